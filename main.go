package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"murmur/asr"
	"murmur/audio"
	"murmur/beep"
	"murmur/encoder"
	"murmur/history"
	"murmur/hotkey"
	"murmur/inject"
	"murmur/log"
	"murmur/login"
	"murmur/notify"
	"murmur/session"
	"murmur/shutdown"
	"murmur/textproc"
	"murmur/tray"
)

var version = "dev"

var shutdownOnce sync.Once

func gracefulShutdown(hist *history.Store) {
	shutdownOnce.Do(func() {
		if hist != nil {
			hist.Close()
		}
		log.Info("shutting down")
		log.Close()
		tray.Quit()
		os.Exit(0)
	})
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func run() {
	modeFlag := flag.String("mode", "ptt", "Recording mode: ptt (hold hotkey) or toggle (tap to start/stop)")
	hotkeyFlag := flag.String("hotkey", hotkey.DefaultCombo, "Global hotkey combo, e.g. ctrl+shift+space or super+f9")
	modelFlag := flag.String("model", "base.en", "Whisper model id (ggml-<id>.bin) or path to a model file")
	modelsFlag := flag.String("models", "", "Models directory (default: <data dir>/models)")
	whisperFlag := flag.String("whisper", "", "Path to the whisper-cli binary (default: found on PATH)")
	langFlag := flag.String("lang", "en", "Language code for transcription. Empty = auto-detect")
	clipboardFlag := flag.Bool("clipboard", false, "Copy transcriptions to clipboard instead of typing them")
	nopostFlag := flag.Bool("nopost", false, "Deliver raw transcription without post-processing")
	conventionFlag := flag.String("convention", "camel", "Identifier casing for code dictation: camel or snake")
	deviceFlag := flag.String("device", "", "Use named microphone device (substring match)")
	keepAudioFlag := flag.Bool("keepaudio", false, "Archive each capture as FLAC under <data dir>/audio")
	vadFlag := flag.Bool("vad", false, "Discard takes with no detected speech and warn on long silence")
	noSoundFlag := flag.Bool("nosound", false, "Disable audio cues")
	noNotifyFlag := flag.Bool("nonotify", false, "Disable desktop notifications")
	logPathFlag := flag.String("logpath", "", "Data directory path (default: OS-specific location)")
	fakeTextFlag := flag.String("faketext", "", "Skip whisper and return this text (pipeline testing)")
	loginFlag := flag.String("login", "", "Manage start-on-login: on, off or status")
	diagnoseFlag := flag.Bool("diagnose", false, "Check hotkey device access and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("murmur %s\n", version)
		os.Exit(0)
	}

	if *diagnoseFlag {
		msg, err := hotkey.Diagnose()
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(msg)
		os.Exit(0)
	}

	if *loginFlag != "" {
		switch *loginFlag {
		case "on":
			if err := login.Enable(); err != nil {
				fatalf("%v", err)
			}
			fmt.Println("start-on-login enabled")
		case "off":
			if err := login.Disable(); err != nil {
				fatalf("%v", err)
			}
			fmt.Println("start-on-login disabled")
		case "status":
			if login.Enabled() {
				fmt.Println("start-on-login is enabled")
			} else {
				fmt.Println("start-on-login is disabled")
			}
		default:
			fatalf("unknown -login value %q (use on, off or status)", *loginFlag)
		}
		os.Exit(0)
	}

	dataDir, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fatalf("failed to resolve data directory: %v", err)
	}
	log.SetDir(dataDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *noSoundFlag {
		beep.Disable()
	}
	if *noNotifyFlag {
		notify.Disable()
	}

	mode, err := session.ParseMode(*modeFlag)
	if err != nil {
		fatalf("%v", err)
	}
	combo, err := hotkey.ParseCombo(*hotkeyFlag)
	if err != nil {
		fatalf("%v", err)
	}
	convention, err := textproc.ParseConvention(*conventionFlag)
	if err != nil {
		fatalf("%v", err)
	}

	audioCtx, err := audio.NewContext()
	if err != nil {
		fatalf("initializing audio: %v", err)
	}
	defer audioCtx.Close()

	device, err := audio.FindDevice(audioCtx, *deviceFlag)
	if err != nil {
		fatalf("%v", err)
	}
	if device != nil && audio.IsBluetooth(device.Name) {
		log.Warnf("bluetooth microphone selected, audio quality may suffer: %s", device.Name)
	}
	recorder := audio.NewRecorder(audioCtx, device)
	if *vadFlag {
		if err := recorder.EnableVAD(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	var engine asr.Engine
	if *fakeTextFlag != "" {
		engine = &asr.Fake{Text: *fakeTextFlag}
	} else {
		modelsDir := *modelsFlag
		if modelsDir == "" {
			modelsDir = filepath.Join(dataDir, "models")
		}
		engine = asr.NewWhisper(*whisperFlag, modelsDir)
	}

	injector, err := inject.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: text injection init failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
	}

	hist, err := history.Open(dataDir)
	if err != nil {
		fatalf("opening history: %v", err)
	}

	ctl := session.NewController(recorder, engine, injector, hist, session.Config{
		Mode:      mode,
		Clipboard: *clipboardFlag,
		Post: textproc.Config{
			Enabled:    !*nopostFlag,
			Convention: convention,
		},
	})

	if err := ctl.LoadModel(context.Background(), *modelFlag, *langFlag); err != nil {
		fatalf("%v", err)
	}

	tray.SetPost(!*nopostFlag)
	tray.SetClipboard(*clipboardFlag)
	tray.OnToggle(ctl.Toggle)
	tray.OnCopyLast(func() {
		if text := ctl.LastText(); text != "" {
			if err := injector.CopyToClipboard(text); err != nil {
				log.Warnf("copy last text failed: %v", err)
			}
		}
	})
	tray.OnPost(ctl.SetPostProcessing)
	tray.OnClipboard(ctl.SetClipboard)
	trayQuit := tray.Init()

	go beep.Init()
	go watchEvents(ctl, recorder, dataDir, *keepAudioFlag, *vadFlag, mode == session.ModeToggle)

	hk, err := hotkey.New(combo)
	if err != nil {
		fatalf("%v", err)
	}
	if err := hk.Register(); err != nil {
		fatalf("registering hotkey %s: %v", combo, err)
	}
	defer hk.Unregister()

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)

	log.Infof("murmur %s ready: hotkey=%s mode=%s model=%s", version, combo, *modeFlag, *modelFlag)

	for {
		select {
		case <-hk.Keydown():
			ctl.HotkeyPressed()
		case <-hk.Keyup():
			ctl.HotkeyReleased()
		case <-sigChan:
			gracefulShutdown(hist)
		case <-trayQuit:
			gracefulShutdown(hist)
		}
	}
}

// watchEvents mirrors controller state into the tray, cues and
// notifications, archives audio when asked to, and runs the silence
// monitor while a recording is open.
func watchEvents(ctl *session.Controller, recorder *audio.Recorder, dataDir string, keepAudio, vadOn, toggleMode bool) {
	sub := ctl.Subscribe()
	defer sub.Close()

	var startedAt time.Time
	var silenceStop chan struct{}
	endSilence := func() {
		if silenceStop != nil {
			close(silenceStop)
			silenceStop = nil
		}
	}

	for ev := range sub.C {
		switch ev.Kind {
		case session.RecordingStarted:
			startedAt = ev.When
			tray.SetRecording(true)
			beep.PlayStart()
			if vadOn {
				silenceStop = make(chan struct{})
				go watchSilence(ctl, recorder, toggleMode, silenceStop)
			}

		case session.RecordingStopped:
			endSilence()
			tray.SetProcessing()
			beep.PlayEnd()

		case session.TranscriptionCompleted:
			tray.SetRecording(false)
			if ev.Text != "" {
				tray.SetLastText(ev.Text, ev.When.Sub(startedAt))
			}
			if keepAudio {
				if pcm := recorder.LastPCM(); len(pcm) > 0 {
					path, err := encoder.ArchivePCM16(filepath.Join(dataDir, "audio"), pcm)
					if err != nil {
						log.Warnf("audio archive failed: %v", err)
					} else {
						log.Info("audio archived: " + path)
					}
				}
			}

		case session.ErrorOccurred:
			endSilence()
			tray.SetError(ev.Message)
			beep.PlayError()
			notify.Error(ev.Message)
		}
	}
}

// watchSilence ticks the monitor against live VAD output until the
// recording ends. A 30 second all-silent take in toggle mode is stopped
// on the speaker's behalf.
func watchSilence(ctl *session.Controller, recorder *audio.Recorder, toggleMode bool, stop <-chan struct{}) {
	mon := audio.NewSilenceMonitor(toggleMode)
	ticker := time.NewTicker(audio.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			switch mon.Tick(recorder.HasSpeechTick()) {
			case audio.SilenceWarn:
				log.Info("no speech detected")
				beep.PlayError()
			case audio.SilenceRepeat:
				beep.PlayError()
			case audio.SilenceAutoClose:
				log.Info("auto-stopping silent recording")
				ctl.Toggle()
				return
			}
		}
	}
}
