package encoder

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

type FlacEncoder struct {
	buf         bytes.Buffer
	enc         *flac.Encoder
	totalFrames uint64
	mu          sync.Mutex
}

func NewFlac() (*FlacEncoder, error) {
	e := &FlacEncoder{}
	info := &meta.StreamInfo{
		BlockSizeMin:  BlockSize,
		BlockSizeMax:  BlockSize,
		SampleRate:    SampleRate,
		NChannels:     Channels,
		BitsPerSample: BitsPerSample,
		NSamples:      0,
	}
	enc, err := flac.NewEncoder(&e.buf, info)
	if err != nil {
		return nil, fmt.Errorf("creating flac encoder: %w", err)
	}
	enc.EnablePredictionAnalysis(true)
	e.enc = enc
	return e, nil
}

func (e *FlacEncoder) EncodeBlock(block []int16) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	samples32 := make([]int32, len(block))
	for i, s := range block {
		samples32[i] = int32(s)
	}

	subframe := &frame.Subframe{
		SubHeader: frame.SubHeader{
			Pred: frame.PredVerbatim,
		},
		Samples:  samples32,
		NSamples: len(block),
	}

	f := &frame.Frame{
		Header: frame.Header{
			BlockSize:     uint16(len(block)),
			SampleRate:    SampleRate,
			Channels:      frame.ChannelsMono,
			BitsPerSample: BitsPerSample,
		},
		Subframes: []*frame.Subframe{subframe},
	}

	if err := e.enc.WriteFrame(f); err != nil {
		return fmt.Errorf("writing flac frame: %w", err)
	}
	e.totalFrames += uint64(len(block))
	return nil
}

func (e *FlacEncoder) Close() error {
	return e.enc.Close()
}

func (e *FlacEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *FlacEncoder) TotalFrames() uint64 {
	return e.totalFrames
}

// EncodePCM compresses a whole capture in one call.
func EncodePCM(samples []float32) ([]byte, error) {
	enc, err := NewFlac()
	if err != nil {
		return nil, err
	}

	block := make([]int16, 0, BlockSize)
	for i := 0; i < len(samples); i += BlockSize {
		end := i + BlockSize
		if end > len(samples) {
			end = len(samples)
		}
		block = block[:0]
		for _, s := range samples[i:end] {
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			block = append(block, int16(s*32767))
		}
		if err := enc.EncodeBlock(block); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// EncodePCM16 compresses raw little-endian 16-bit mono PCM.
func EncodePCM16(pcm []byte) ([]byte, error) {
	enc, err := NewFlac()
	if err != nil {
		return nil, err
	}

	n := len(pcm) / 2
	block := make([]int16, 0, BlockSize)
	for i := 0; i < n; i += BlockSize {
		end := i + BlockSize
		if end > n {
			end = n
		}
		block = block[:0]
		for j := i; j < end; j++ {
			block = append(block, int16(uint16(pcm[j*2])|uint16(pcm[j*2+1])<<8))
		}
		if err := enc.EncodeBlock(block); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// Archive writes a capture to dir as a timestamped FLAC file and
// returns its path.
func Archive(dir string, samples []float32) (string, error) {
	data, err := EncodePCM(samples)
	if err != nil {
		return "", err
	}
	return writeArchive(dir, data)
}

// ArchivePCM16 is Archive for the recorder's raw PCM bytes.
func ArchivePCM16(dir string, pcm []byte) (string, error) {
	data, err := EncodePCM16(pcm)
	if err != nil {
		return "", err
	}
	return writeArchive(dir, data)
}

func writeArchive(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("archive dir: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("20060102-150405")+".flac")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}
