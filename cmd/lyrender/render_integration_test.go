//go:build integration

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/fileutil"
)

func TestRunMain_Integration(t *testing.T) {
	for _, tool := range []string{"lilypond", "gs", "convert", "fluidsynth"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
	if !fileutil.FileExists(config.DefaultSampleBank) {
		t.Skipf("SoundFont %s not installed", config.DefaultSampleBank)
	}
	t.Setenv("LYRENDER_CONFIG", "")
	t.Setenv("LYRENDER_SOUNDFONT", config.DefaultSampleBank)

	dir := t.TempDir()
	score := filepath.Join(dir, "scale.ly")
	content := "\\version \"2.18.2\"\n\\score { { c' d' e' f' } \\layout { } \\midi { } }\n"
	if err := os.WriteFile(score, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	env := DefaultEnv()
	env.DotEnv = ""
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env.Stdout, env.Stderr = stdout, stderr

	if code := runMain([]string{"lyrender", score, "-d", filepath.Join(dir, "work")}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	var result struct {
		Images []string `json:"images"`
		Audio  string   `json:"audio"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout.String())
	}
	if len(result.Images) == 0 {
		t.Error("no images reported")
	}
	if !fileutil.FileExists(result.Audio) {
		t.Errorf("audio %q missing", result.Audio)
	}
}
