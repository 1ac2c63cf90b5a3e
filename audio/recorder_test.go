package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func rampPCM(samples int) []byte {
	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(i%256)))
	}
	return pcm
}

func TestRecorderBuffersSamples(t *testing.T) {
	pcm := rampPCM(SampleRate) // one second
	rec := NewRecorder(NewFakeContextFromPCM(pcm, false), nil)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	samples, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(samples) < SampleRate {
		t.Fatalf("got %d samples, want at least %d", len(samples), SampleRate)
	}
	// ramp values scale to s/32768
	if got, want := samples[100], float32(100)/32768; got != want {
		t.Errorf("sample 100 = %v, want %v", got, want)
	}
	if got := rec.LastPCM(); len(got) < len(pcm) {
		t.Errorf("last pcm %d bytes, want at least %d", len(got), len(pcm))
	}
}

func TestRecorderRejectsDoubleStart(t *testing.T) {
	rec := NewRecorder(NewFakeContextFromPCM(rampPCM(1024), false), nil)
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer rec.Cancel()

	if err := rec.Start(); err != ErrAlreadyRecording {
		t.Fatalf("second Start = %v, want ErrAlreadyRecording", err)
	}
}

func TestRecorderCancelDiscards(t *testing.T) {
	rec := NewRecorder(NewFakeContextFromPCM(rampPCM(1024), false), nil)
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.Cancel()

	if _, err := rec.Stop(); err == nil {
		t.Fatal("Stop after Cancel should fail")
	}
	if got := rec.LastPCM(); got != nil {
		t.Errorf("canceled take kept pcm (%d bytes)", len(got))
	}
}

func TestRecorderRestartsAfterStop(t *testing.T) {
	ctx := NewFakeContextFromPCM(rampPCM(4096), false)
	rec := NewRecorder(ctx, nil)

	for i := 0; i < 2; i++ {
		if err := rec.Start(); err != nil {
			t.Fatalf("Start %d: %v", i, err)
		}
		if _, err := rec.Stop(); err != nil {
			t.Fatalf("Stop %d: %v", i, err)
		}
	}
}

func TestIsBluetooth(t *testing.T) {
	if !IsBluetooth("AirPods Pro") {
		t.Error("AirPods not detected")
	}
	if IsBluetooth("Built-in Microphone") {
		t.Error("built-in flagged as bluetooth")
	}
}

func TestFindDeviceEmptyNameMeansDefault(t *testing.T) {
	dev, err := FindDevice(NewFakeContextFromPCM(nil, false), "")
	if err != nil || dev != nil {
		t.Fatalf("got %v, %v; want nil, nil", dev, err)
	}
}
