package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jacoelho/jsonschema/internal/config"
)

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	cpuProfile string
	memProfile string
	logLevel   string

	stopCPUProfile func() error
}

func newRootCmd(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "jsonlint",
		Short:         "Validate JSON and YAML documents against JSON Schema draft-04",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(stderr)
			_ = cmd.Usage()
			return usageError{err: errors.New("a command is required")}
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return flags.start()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	pf.StringVar(&flags.memProfile, "memprofile", "", "write memory profile to file")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newValidateCmd(flags, stdout, stderr),
		newCheckSchemaCmd(flags, stdout, stderr),
		newServeCmd(stderr),
	)
	return root
}

// usageArgs turns positional argument failures into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// logger returns the console logger used by the one-shot commands.
func (f *rootFlags) logger(stderr io.Writer) (zerolog.Logger, error) {
	logger, err := config.NewLogger(config.LoggingConfig{Level: f.logLevel, Format: "console"}, stderr)
	if err != nil {
		return logger, usageError{err: err}
	}
	return logger, nil
}

func (f *rootFlags) start() error {
	if f.cpuProfile == "" {
		return nil
	}
	stop, err := startCPUProfile(f.cpuProfile)
	if err != nil {
		return fmt.Errorf("error starting CPU profile: %w", err)
	}
	f.stopCPUProfile = stop
	return nil
}

// finish stops the CPU profile and writes the memory profile, if requested.
func (f *rootFlags) finish() error {
	var errs []error
	if f.stopCPUProfile != nil {
		if err := f.stopCPUProfile(); err != nil {
			errs = append(errs, fmt.Errorf("error stopping CPU profile: %w", err))
		}
		f.stopCPUProfile = nil
	}
	if f.memProfile != "" {
		if err := writeMemProfile(f.memProfile); err != nil {
			errs = append(errs, fmt.Errorf("error writing memory profile: %w", err))
		}
	}
	return errors.Join(errs...)
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
