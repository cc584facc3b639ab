// Package wav writes and reads the 16-bit mono PCM WAV files chime produces.
// Container handling is delegated to github.com/go-audio/wav; this package
// owns quantization.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/minicodemonkey/chime/internal/synth"
)

const (
	// HeaderSize is the size of the canonical RIFF/fmt/data header.
	HeaderSize = 44

	Channels      = 1
	BitsPerSample = 16

	// DefaultGain leaves normalized waveforms at full scale.
	DefaultGain = 1.0

	formatPCM = 1
)

var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// Header describes the stream format of a WAV file.
type Header struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataSize      int // bytes of sample data
}

// Quantize scales s by 32767*gain, clamps to the int16 range and truncates
// toward zero.
func Quantize(s, gain float64) int16 {
	v := s * math.MaxInt16 * gain
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Encode writes samples as a mono 16-bit PCM WAV stream. The header sizes
// are patched on close, so w must be seekable.
func Encode(w io.WriteSeeker, samples synth.Waveform, sampleRate int, gain float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(Quantize(s, gain))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitsPerSample,
	}

	enc := gowav.NewEncoder(w, sampleRate, BitsPerSample, Channels, formatPCM)
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// Bytes returns the encoded WAV file for samples.
func Bytes(samples synth.Waveform, sampleRate int, gain float64) ([]byte, error) {
	var ws writeSeeker
	if err := Encode(&ws, samples, sampleRate, gain); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// Decode reads a 16-bit PCM WAV stream. Chunks other than fmt and data are
// skipped.
func Decode(r io.ReadSeeker) (Header, []int16, error) {
	var h Header

	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return h, nil, ErrNotWAV
	}
	if d.WavAudioFormat != formatPCM {
		return h, nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	if d.BitDepth != BitsPerSample {
		return h, nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, d.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return h, nil, fmt.Errorf("reading data chunk: %w", err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	h = Header{
		SampleRate:    int(d.SampleRate),
		Channels:      int(d.NumChans),
		BitsPerSample: int(d.BitDepth),
		DataSize:      len(samples) * BitsPerSample / 8,
	}
	return h, samples, nil
}

// PCMBytes converts int16 samples to little-endian bytes.
func PCMBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// FileSink writes waveforms to WAV files on disk.
type FileSink struct {
	Gain float64
}

// Write encodes w into a new file at path, replacing any existing file.
func (s FileSink) Write(path string, w synth.Waveform, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := Encode(f, w, sampleRate, s.Gain); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (Header, []int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Decode(f)
}

// writeSeeker is an in-memory io.WriteSeeker for Bytes.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	if end := ws.pos + len(p); end > len(ws.buf) {
		ws.buf = append(ws.buf, make([]byte, end-len(ws.buf))...)
	}
	n := copy(ws.buf[ws.pos:], p)
	ws.pos += n
	return n, nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(ws.pos) + offset
	case io.SeekEnd:
		abs = int64(len(ws.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.New("negative seek position")
	}
	ws.pos = int(abs)
	return abs, nil
}
