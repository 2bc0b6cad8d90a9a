package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lyrender <command> [flags] [args]")
	fmt.Fprintln(w, "       lyrender <file.ly> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render a LilyPond score to PNG pages and a WAV file")
	fmt.Fprintln(w, "  doctor      Check that the external tools are installed")
	fmt.Fprintln(w, "  soundfont   Show or set the SoundFont used for audio")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lyrender help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lyrender render <file> [flags]")
	fmt.Fprintln(w, "       lyrender render --source <text> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a score and print {\"images\":[...],\"audio\":\"...\"} on stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file    LilyPond file (.ly), or MIDI file (.mid) imported with midi2ly")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --source <text>       Music expression wrapped in a score; \"-\" reads stdin")
	fmt.Fprintln(w, "  -d, --workdir <dir>       Working directory (default: fresh temp dir)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel page trims (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Whole-run timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "  -r, --resolution <n>      Raster resolution in dpi (default: 101)")
	fmt.Fprintln(w, "      --max-pages <n>       Page cap when the count is not declared (default: 500)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Audio:")
	fmt.Fprintln(w, "  -s, --soundfont <path>    SoundFont (.sf2) for this run")
	fmt.Fprintln(w, "      --sample-rate <n>     Sample rate in Hz (default: 44100)")
	fmt.Fprintln(w, "      --max-audio <f>       Truncate audio to n seconds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --lilypond <bin>      lilypond binary")
	fmt.Fprintln(w, "      --gs <bin>            Ghostscript binary")
	fmt.Fprintln(w, "      --convert <bin>       ImageMagick convert binary")
	fmt.Fprintln(w, "      --fluidsynth <bin>    fluidsynth binary")
	fmt.Fprintln(w, "      --midi2ly <bin>       midi2ly binary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every tool invocation")
	fmt.Fprintln(w, "      --log-level <s>       trace, debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lyrender doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check tools, SoundFont and temp directory. Exits 1 when not ready.")
}

// printSoundfontUsage prints usage for the soundfont command.
func printSoundfontUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lyrender soundfont [-c config]")
	fmt.Fprintln(w, "       lyrender soundfont set <path.sf2> [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the SoundFont used for audio, or record a new one in the")
	fmt.Fprintln(w, "SoundFont file (audio.sampleBankFile).")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "soundfont":
		printSoundfontUsage(env.Stdout)
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: lyrender config [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration after the config file and LYRENDER_* variables.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lyrender version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lyrender help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
