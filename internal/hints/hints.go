// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-lyrender/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// toolPackages maps tool binaries to the distribution package providing them.
var toolPackages = map[string]string{
	"lilypond":   "lilypond",
	"midi2ly":    "lilypond",
	"gs":         "ghostscript",
	"convert":    "imagemagick",
	"fluidsynth": "fluidsynth",
}

// ForToolNotFound returns hints for a tool binary missing from PATH.
func ForToolNotFound(tool string) string {
	var hints []string

	name := filepath.Base(tool)
	if pkg, ok := toolPackages[name]; ok {
		if IsInContainer() {
			hints = append(hints, "add "+pkg+" to the container image")
		} else {
			hints = append(hints, "install "+pkg)
		}
	}
	hints = append(hints, "set tools."+configKey(name)+" in the config file if it is installed elsewhere")
	hints = append(hints, "run 'lyrender doctor' to check all tools")

	return formatHints(hints)
}

// configKey returns the config field for a tool binary.
func configKey(name string) string {
	switch name {
	case "gs":
		return "ghostscript"
	case "":
		return "<tool>"
	}
	return name
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large scores, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	sep := string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, sep+"lyrender"+sep) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForWorkDir returns hints for working directory creation errors.
func ForWorkDir() string {
	return format("check parent directory exists and is writable")
}

// ForSampleBank returns hints for a missing SoundFont.
func ForSampleBank() string {
	return formatHints([]string{
		"install a General MIDI SoundFont (fluid-soundfont-gm)",
		"or run 'lyrender soundfont set /path/to/bank.sf2'",
	})
}

// ForMissingMIDI returns hints for scores that produce no MIDI output.
func ForMissingMIDI() string {
	return format(`add a \midi { } block to the \score`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
