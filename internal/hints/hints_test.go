package hints

// Notes:
// - ForToolNotFound tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func TestForToolNotFound(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	tests := []struct {
		tool string
		want []string
	}{
		{tool: "gs", want: []string{"install ghostscript", "tools.ghostscript"}},
		{tool: "/usr/local/bin/convert", want: []string{"install imagemagick", "tools.convert"}},
		{tool: "midi2ly", want: []string{"install lilypond", "tools.midi2ly"}},
		{tool: "fluidsynth", want: []string{"install fluidsynth", "lyrender doctor"}},
	}

	for _, tt := range tests {
		hint := ForToolNotFound(tt.tool)
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("ForToolNotFound(%q) = %q, want hint prefix", tt.tool, hint)
		}
		for _, w := range tt.want {
			if !strings.Contains(hint, w) {
				t.Errorf("ForToolNotFound(%q) = %q, missing %q", tt.tool, hint, w)
			}
		}
	}
}

func TestForToolNotFound_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	hint := ForToolNotFound("lilypond")
	if !strings.Contains(hint, "add lilypond to the container image") {
		t.Errorf("ForToolNotFound() = %q, want container suggestion", hint)
	}
}

func TestForToolNotFound_UnknownTool(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hint := ForToolNotFound("mystery")
	if strings.Contains(hint, "hint: install") || strings.Contains(hint, "install mystery") {
		t.Errorf("ForToolNotFound() = %q, should not guess a package", hint)
	}
	if !strings.Contains(hint, "lyrender doctor") {
		t.Errorf("ForToolNotFound() = %q, want doctor suggestion", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"work.yaml", "work.yml", "/home/u/.config/lyrender/work.yaml"},
			want:     "or create /home/u/.config/lyrender/work.yaml",
		},
		{
			name:     "no user path",
			searched: []string{"work.yaml"},
			want:     "use --config /path/to/file.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ForConfigNotFound(tt.searched); !strings.Contains(got, tt.want) {
				t.Errorf("ForConfigNotFound() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimpleHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"work dir", ForWorkDir(), "writable"},
		{"sample bank", ForSampleBank(), "lyrender soundfont set"},
		{"missing midi", ForMissingMIDI(), `\midi`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") || !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint = %q, want prefix and %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
