package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-lyrender"
	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands recognized by runMain.
var commands = []string{"render", "doctor", "soundfont", "config", "completion", "version", "help"}

// inputExtensions are accepted as a bare first argument (shorthand for render).
var inputExtensions = map[string]bool{
	".ly":   true,
	".ily":  true,
	".mid":  true,
	".midi": true,
}

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args[1:], "-v") || slices.Contains(os.Args[1:], "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if env.DotEnv != "" {
		if err := loadDotEnv(env.DotEnv); err != nil {
			fmt.Fprintf(env.Stderr, "warning: %v\n", err)
		}
	}

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]

	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "soundfont":
		err = runSoundfont(rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "lyrender %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		if !strings.HasPrefix(cmd, "-") && !looksLikeInput(cmd) {
			fmt.Fprintf(env.Stderr, "error: unknown command: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		err = runRender(ctx, args[1:], env)
	}

	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// looksLikeInput reports whether arg is a score file given without "render".
func looksLikeInput(arg string) bool {
	if isCommand(arg) {
		return false
	}
	return inputExtensions[strings.ToLower(filepath.Ext(arg))] || fileutil.FileExists(arg)
}

// printError writes the diagnostic for a failed command, with hints when
// the failure has a known remedy.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

// hintFor returns the hint matching err, or an empty string.
func hintFor(err error) string {
	var toolErr *lyrender.ToolError
	switch {
	case errors.Is(err, lyrender.ErrToolNotFound) && errors.As(err, &toolErr):
		return hints.ForToolNotFound(toolErr.Tool)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, lyrender.ErrSampleBankMissing):
		return hints.ForSampleBank()
	case errors.Is(err, lyrender.ErrMissingMIDI):
		return hints.ForMissingMIDI()
	case errors.Is(err, lyrender.ErrWorkspace):
		return hints.ForWorkDir()
	}
	return ""
}
