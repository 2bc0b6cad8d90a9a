package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/logging"
	"github.com/alnah/go-lyrender/internal/yamlutil"
)

// runSoundfont shows the resolved SoundFont, or records a new one with
// "soundfont set PATH".
func runSoundfont(args []string, env *Environment) error {
	fs := flag.NewFlagSet("soundfont", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	configName := fs.StringP("config", "c", "", "config file name or path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printSoundfontUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := loadSettings(*configName)
	if err != nil {
		return err
	}

	rest := fs.Args()
	switch {
	case len(rest) == 0:
		log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Out: env.Stderr})
		if err != nil {
			return err
		}
		bank := config.ResolveSampleBank(cfg.Audio.SampleBank, cfg.Audio.SampleBankFile, log)
		if bank.Source != "" {
			fmt.Fprintf(env.Stdout, "%s (%s: %s)\n", bank.Path, bank.Origin, bank.Source)
		} else {
			fmt.Fprintf(env.Stdout, "%s (%s)\n", bank.Path, bank.Origin)
		}
		return nil

	case rest[0] == "set" && len(rest) == 2:
		saved, err := config.SaveSampleBank(cfg.Audio.SampleBankFile, rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "SoundFont set to %s (saved in %s)\n", saved, cfg.Audio.SampleBankFile)
		if cfg.Audio.SampleBank != "" {
			fmt.Fprintf(env.Stderr, "warning: audio.sampleBank or LYRENDER_SOUNDFONT (%s) still takes precedence\n",
				cfg.Audio.SampleBank)
		}
		return nil

	default:
		return fmt.Errorf("%w: expected 'soundfont' or 'soundfont set <path>'", ErrUsage)
	}
}

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	configName := fs.StringP("config", "c", "", "config file name or path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"config"}, env)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(*configName)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
