package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/process"
)

// versionTimeout bounds each "<tool> --version" probe.
const versionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string     `json:"status"` // "ready", "warnings", "errors"
	Tools      []toolInfo `json:"tools"`
	SampleBank bankInfo   `json:"sample_bank"`
	Env        envInfo    `json:"environment"`
	System     systemInfo `json:"system"`
	Warnings   []string   `json:"warnings,omitempty"`
	Errors     []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external tool.
type toolInfo struct {
	Name     string `json:"name"`
	Binary   string `json:"binary"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// bankInfo holds the resolved SoundFont.
type bankInfo struct {
	Path   string `json:"path"`
	Origin string `json:"origin"`
	Found  bool   `json:"found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// toolCheck describes one tool to probe.
type toolCheck struct {
	name        string
	binary      string
	versionFlag string
	required    bool
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags or config.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		printError(env.Stderr, fmt.Errorf("%w: %v", ErrUsage, err))
		return ExitUsage
	}

	cfg, err := loadSettings(*configName)
	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}

	result := runDoctor(ctx, cfg, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkTools(ctx, cfg, env, result)
	checkSampleBank(cfg, result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTools locates every tool on PATH and records its version.
// midi2ly is only needed for MIDI input, so its absence is a warning.
func checkTools(ctx context.Context, cfg *config.Config, env *Environment, result *doctorResult) {
	checks := []toolCheck{
		{name: "lilypond", binary: cfg.Tools.Lilypond, versionFlag: "--version", required: true},
		{name: "ghostscript", binary: cfg.Tools.Ghostscript, versionFlag: "--version", required: true},
		{name: "convert", binary: cfg.Tools.Convert, versionFlag: "-version", required: true},
		{name: "fluidsynth", binary: cfg.Tools.Fluidsynth, versionFlag: "--version", required: true},
		{name: "midi2ly", binary: cfg.Tools.Midi2ly, versionFlag: "--version", required: false},
	}

	for _, c := range checks {
		info := toolInfo{Name: c.name, Binary: c.binary, Required: c.required}

		path, err := env.LookPath(c.binary)
		if err != nil {
			msg := fmt.Sprintf("%s not found (%s)", c.name, c.binary)
			if c.required {
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg+"; MIDI input unavailable")
			}
			result.Tools = append(result.Tools, info)
			continue
		}
		info.Found = true
		info.Path = path

		version, err := toolVersion(ctx, env.Runner, path, c.versionFlag)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not get %s version: %v", c.name, err))
		}
		info.Version = version

		result.Tools = append(result.Tools, info)
	}
}

// toolVersion returns the first non-empty line "<path> <flag>" prints,
// looking at stdout first and then stderr.
func toolVersion(ctx context.Context, runner process.Runner, path, versionFlag string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := runner.Run(ctx, process.Command{Name: path, Args: []string{versionFlag}})
	if err != nil {
		return "", err
	}
	for _, stream := range [][]byte{out.Stdout, out.Stderr} {
		for _, line := range strings.Split(string(stream), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				return line, nil
			}
		}
	}
	return "", nil
}

// checkSampleBank resolves the SoundFont the way render does and checks it exists.
func checkSampleBank(cfg *config.Config, result *doctorResult) {
	bank := config.ResolveSampleBank(cfg.Audio.SampleBank, cfg.Audio.SampleBankFile, zerolog.Nop())

	result.SampleBank = bankInfo{
		Path:   bank.Path,
		Origin: bank.Origin,
		Found:  fileutil.FileExists(bank.Path),
	}
	if !result.SampleBank.Found {
		result.Errors = append(result.Errors,
			fmt.Sprintf("SoundFont not found: %s. Run 'lyrender soundfont set PATH'", bank.Path))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("LYRENDER_CONTAINER") == "1" {
		return true, "LYRENDER_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for working directories.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	result.System.TempDir = tmpDir

	testFile := filepath.Join(tmpDir, "lyrender-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// statusMarks renders [OK], [WARN] and [ERROR], colored on a terminal.
type statusMarks struct {
	ok, warn, err string
}

func newStatusMarks(w io.Writer) statusMarks {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)
	if !isTerminal(w) {
		green.DisableColor()
		yellow.DisableColor()
		red.DisableColor()
	}
	return statusMarks{
		ok:   green.Sprint("[OK]"),
		warn: yellow.Sprint("[WARN]"),
		err:  red.Sprint("[ERROR]"),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	m := newStatusMarks(w)

	fmt.Fprintln(w, "lyrender doctor")
	fmt.Fprintln(w)

	// Tools section
	fmt.Fprintln(w, "Tools")
	for _, t := range r.Tools {
		switch {
		case t.Found && t.Version != "":
			fmt.Fprintf(w, "  %s %s: %s (%s)\n", m.ok, t.Name, t.Path, t.Version)
		case t.Found:
			fmt.Fprintf(w, "  %s %s: %s\n", m.ok, t.Name, t.Path)
		case t.Required:
			fmt.Fprintf(w, "  %s %s: not found\n", m.err, t.Name)
		default:
			fmt.Fprintf(w, "  %s %s: not found (optional)\n", m.warn, t.Name)
		}
	}
	fmt.Fprintln(w)

	// SoundFont section
	fmt.Fprintln(w, "SoundFont")
	if r.SampleBank.Found {
		fmt.Fprintf(w, "  %s %s (%s)\n", m.ok, r.SampleBank.Path, r.SampleBank.Origin)
	} else {
		fmt.Fprintf(w, "  %s %s (%s): not found\n", m.err, r.SampleBank.Path, r.SampleBank.Origin)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", m.ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", m.ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", m.ok)
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", m.ok)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", m.err)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", m.warn, warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", m.err, err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
