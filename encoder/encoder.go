// Package encoder compresses captured audio to FLAC for the optional
// keep-audio archive.
package encoder

const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)
