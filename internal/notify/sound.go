// Package notify plays rendered chimes through the system audio device.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/minicodemonkey/chime/internal/wav"
)

// Notifier handles audio playback. An oto context can only be created once
// per process, so its sample rate is fixed by the first GetNotifier call.
type Notifier struct {
	context    *oto.Context
	sampleRate int
	mu         sync.Mutex
	enabled    bool
}

var (
	globalNotifier *Notifier
	initOnce       sync.Once
	initErr        error
)

// GetNotifier returns the global notifier instance, opening a mono 16-bit
// output at sampleRate on first use.
func GetNotifier(sampleRate int) (*Notifier, error) {
	initOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: wav.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			initErr = err
			return
		}
		<-ready

		globalNotifier = &Notifier{
			context:    ctx,
			sampleRate: sampleRate,
			enabled:    true,
		}
	})
	return globalNotifier, initErr
}

// SetEnabled enables or disables playback.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether playback is enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

// Play decodes a WAV file and blocks until it has finished playing or ctx is
// done. Disabled notifiers return immediately.
func (n *Notifier) Play(ctx context.Context, data []byte) error {
	if !n.IsEnabled() || n.context == nil {
		return nil
	}

	h, samples, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if h.Channels != wav.Channels || h.SampleRate != n.sampleRate {
		return fmt.Errorf("cannot play %d Hz/%d ch audio on a %d Hz mono device", h.SampleRate, h.Channels, n.sampleRate)
	}

	player := n.context.NewPlayer(NewPCMReader(wav.PCMBytes(samples)))
	defer player.Close()

	player.Play()

	// Wait for playback to complete
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return nil
}

// PCMReader implements io.Reader over raw PCM bytes.
type PCMReader struct {
	data   []byte
	offset int
}

// NewPCMReader creates a new PCMReader.
func NewPCMReader(data []byte) *PCMReader {
	return &PCMReader{data: data}
}

// Read implements io.Reader.
func (r *PCMReader) Read(p []byte) (n int, err error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.offset:])
	r.offset += n
	return n, nil
}
