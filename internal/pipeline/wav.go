package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/alnah/go-lyrender/internal/fileutil"
)

// ErrAudioTruncate is returned when a WAV file cannot be shortened.
var ErrAudioTruncate = errors.New("cannot truncate audio")

// TruncateWAV shortens the WAV file at path to at most limit, rewriting it
// in place. It reports whether the file was changed.
func TruncateWAV(path string, limit time.Duration) (bool, error) {
	if limit <= 0 {
		return false, nil
	}

	in, err := os.Open(path) // #nosec G304 -- path is a workspace artifact
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrAudioTruncate, err)
	}
	defer func() { _ = in.Close() }()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return false, fmt.Errorf("%w: %s is not a valid WAV file", ErrAudioTruncate, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return false, fmt.Errorf("%w: decoding: %v", ErrAudioTruncate, err)
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	if channels < 1 || rate < 1 {
		return false, fmt.Errorf("%w: invalid format (%d channels, %d Hz)", ErrAudioTruncate, channels, rate)
	}
	keep := int(limit.Seconds()*float64(rate)) * channels
	if keep >= len(buf.Data) {
		return false, nil
	}
	buf.Data = buf.Data[:keep]

	tmp := path + ".tmp"
	out, err := os.Create(tmp) // #nosec G304 -- path is a workspace artifact
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrAudioTruncate, err)
	}
	enc := wav.NewEncoder(out, rate, int(dec.BitDepth), channels, int(dec.WavAudioFormat))
	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return false, fmt.Errorf("%w: encoding: %v", ErrAudioTruncate, err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return false, fmt.Errorf("%w: encoding: %v", ErrAudioTruncate, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("%w: %v", ErrAudioTruncate, err)
	}
	_ = in.Close()
	if err := fileutil.ReplaceFile(tmp, path); err != nil {
		return false, fmt.Errorf("%w: %v", ErrAudioTruncate, err)
	}
	return true, nil
}
