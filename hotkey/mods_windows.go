package hotkey

import "golang.design/x/hotkey"

const (
	altModifier   = hotkey.ModAlt
	superModifier = hotkey.ModWin
)
