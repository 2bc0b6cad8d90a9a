package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/fileutil"
)

// DefaultSampleBank is the General MIDI bank shipped by most distributions
// (fluid-soundfont-gm).
const DefaultSampleBank = "/usr/share/sounds/sf2/FluidR3_GM.sf2"

// sampleBankFileName is the designated file inside the user config directory.
const sampleBankFileName = "soundfont.txt"

// ErrSampleBankNotFound is returned when saving a bank path that does not exist.
var ErrSampleBankNotFound = errors.New("sample bank file not found")

// Origins reported by ResolveSampleBank.
const (
	OriginExplicit = "explicit"
	OriginFile     = "file"
	OriginDefault  = "default"
)

// SampleBank is a resolved instrument sample bank.
type SampleBank struct {
	Path   string // .sf2 file handed to the synthesizer
	Origin string // OriginExplicit, OriginFile or OriginDefault
	Source string // the bank file consulted, for OriginFile
}

// DefaultSampleBankFile returns <UserConfigDir>/lyrender/soundfont.txt,
// or an empty string when the user config directory is unknown.
func DefaultSampleBankFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, sampleBankFileName)
}

// ResolveSampleBank picks the bank for a run. Priority: explicit path >
// trimmed non-empty content of bankFile > DefaultSampleBank.
// A bank file that exists but cannot be read is logged as a warning and the
// default is used; it never fails the run.
func ResolveSampleBank(explicit, bankFile string, log zerolog.Logger) SampleBank {
	if p := strings.TrimSpace(explicit); p != "" {
		return SampleBank{Path: p, Origin: OriginExplicit}
	}

	if bankFile != "" {
		data, err := os.ReadFile(bankFile) // #nosec G304 -- designated config file
		switch {
		case err == nil:
			if p := strings.TrimSpace(string(data)); p != "" {
				return SampleBank{Path: p, Origin: OriginFile, Source: bankFile}
			}
		case errors.Is(err, fs.ErrNotExist):
			// absent file selects the default silently
		default:
			log.Warn().Err(err).Str("file", bankFile).Str("fallback", DefaultSampleBank).
				Msg("cannot read sample bank file, using default")
		}
	}

	return SampleBank{Path: DefaultSampleBank, Origin: OriginDefault}
}

// SaveSampleBank records bankPath in bankFile after checking that the bank
// exists. The stored value is absolute so that later runs from other
// directories resolve the same file.
func SaveSampleBank(bankFile, bankPath string) (string, error) {
	if bankFile == "" {
		return "", fmt.Errorf("%w: no sample bank file configured", ErrInvalidValue)
	}
	bankPath = strings.TrimSpace(bankPath)
	if !fileutil.FileExists(bankPath) {
		return "", fmt.Errorf("%w: %s", ErrSampleBankNotFound, bankPath)
	}
	abs, err := filepath.Abs(bankPath)
	if err != nil {
		return "", fmt.Errorf("resolving sample bank path: %w", err)
	}
	if err := fileutil.WriteFile(bankFile, []byte(abs+"\n")); err != nil {
		return "", err
	}
	return abs, nil
}
