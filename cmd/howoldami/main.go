package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/adam-gaia/howoldami/internal/application"
	"github.com/adam-gaia/howoldami/internal/buildinfo"
	"github.com/adam-gaia/howoldami/internal/config"
	"github.com/adam-gaia/howoldami/internal/logging"
)

const programName = "howoldami"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New(programName, "Prints your age, computed from the birth date in your configuration file")
	kingpinApp.Version(buildinfo.String())
	kingpinApp.HelpFlag.Short('h')
	kingpinApp.UsageWriter(stdout)
	kingpinApp.ErrorWriter(stderr)

	terminated := -1
	kingpinApp.Terminate(func(code int) { terminated = code })

	configFile := kingpinApp.Flag("config", "Path to a TOML or YAML configuration file").String()
	birthday := kingpinApp.Flag("birthday", "Specify your birthday").Short('b').String()
	birthyear := kingpinApp.Flag("birthyear", "Specify just your birth year").String()
	date := kingpinApp.Flag("date", "Override today's date").Short('d').String()
	year := kingpinApp.Flag("year", "Override today's date, but just the year").Short('y').String()
	format := kingpinApp.Flag("format", "Date format: field order and separator, e.g. YMD-, MDY/ or DMY.").Short('f').String()
	leapDay := kingpinApp.Flag("leap-day", "Anniversary of Feb 29 in common years").Enum("mar1", "feb28")
	outputMode := kingpinApp.Flag("output", "Output mode").Short('o').Enum("years", "full", "json")
	verbose := kingpinApp.Flag("verbose", "Increase message verbosity").Short('v').Bool()
	quiet := kingpinApp.Flag("quiet", "Silence all output except your age").Short('q').Bool()
	logJSON := kingpinApp.Flag("log-json", "Write diagnostics to stderr as JSON").Bool()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "%s: %v, try --help\n", programName, err)
		return application.ExitUsage
	}
	if terminated >= 0 {
		return terminated
	}

	if err := exclusive("--birthday", *birthday != "", "--birthyear", *birthyear != ""); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return application.ExitUsage
	}
	if err := exclusive("--date", *date != "", "--year", *year != ""); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return application.ExitUsage
	}
	if err := exclusive("--verbose", *verbose, "--quiet", *quiet); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return application.ExitUsage
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		LogJSON:    *logJSON,
	}

	if *birthday != "" {
		overrides.BirthDate = birthday
	}

	if *birthyear != "" {
		overrides.BirthYear = birthyear
	}

	if *date != "" {
		overrides.ReferenceDate = date
	}

	if *year != "" {
		overrides.ReferenceYear = year
	}

	if *format != "" {
		overrides.DateFormat = format
	}

	if *leapDay != "" {
		overrides.LeapDayPolicy = leapDay
	}

	if *outputMode != "" {
		overrides.Output = outputMode
	}

	switch {
	case *verbose:
		overrides.Verbosity = config.Verbose
	case *quiet:
		overrides.Verbosity = config.Quiet
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return application.ExitCode(err)
	}

	logger, err := logging.New(logging.Options{
		Level: application.LogLevel(cfg.Verbosity),
		JSON:  cfg.LogJSON,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%s: failed to initialize logger: %v\n", programName, err)
		return application.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := application.New(cfg, logger, stdout).Run(); err != nil {
		logger.Debug("run failed", zap.Error(err))
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return application.ExitCode(err)
	}

	return application.ExitOK
}

func exclusive(a string, aSet bool, b string, bSet bool) error {
	if aSet && bSet {
		return errors.New(a + " and " + b + " cannot be used together")
	}
	return nil
}
