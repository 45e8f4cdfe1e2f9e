package application

import (
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adam-gaia/howoldami/internal/calculator"
	"github.com/adam-gaia/howoldami/internal/calendar"
	"github.com/adam-gaia/howoldami/internal/config"
	"github.com/adam-gaia/howoldami/internal/output"
)

// Exit codes returned by ExitCode.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitUsage          = 2
	ExitConfigNotFound = 3
	ExitConfigParse    = 4
	ExitInvalidDate    = 5
	ExitFutureBirth    = 6
)

// App encapsulates the dependencies of a single age computation.
type App struct {
	cfg        config.Config
	calculator calculator.Calculator
	printer    *output.Printer
	logger     *zap.Logger
	clock      func() time.Time
}

// Option configures App behaviour.
type Option func(*App)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// New initializes the application from the provided configuration.
// Results are written to stdout.
func New(cfg config.Config, logger *zap.Logger, stdout io.Writer, opts ...Option) *App {
	a := &App{
		cfg:        cfg,
		calculator: calculator.New(calculator.WithLeapDayPolicy(cfg.LeapDayPolicy)),
		printer:    output.NewPrinter(stdout, cfg.Output),
		logger:     logger,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run computes the age and prints it.
func (a *App) Run() error {
	if len(a.cfg.UnknownKeys) > 0 {
		a.logger.Warn("ignoring unknown configuration keys",
			zap.String("file", a.cfg.File),
			zap.Strings("keys", a.cfg.UnknownKeys),
		)
	}

	reference := a.cfg.ReferenceDate
	if reference.IsZero() {
		reference = calendar.Today(a.clock)
	}

	a.logger.Debug("dates resolved",
		zap.String("config_file", a.cfg.File),
		zap.Stringer("birth_date", a.cfg.BirthDate),
		zap.Bool("birth_year_only", a.cfg.BirthYearOnly),
		zap.Stringer("reference_date", reference),
		zap.Stringer("leap_day_policy", a.cfg.LeapDayPolicy),
	)

	age, err := a.calculator.Age(a.cfg.BirthDate, reference)
	if err != nil {
		return err
	}

	a.logger.Debug("age computed",
		zap.Int("years", age.Years),
		zap.Int("months", age.Months),
		zap.Int("days", age.Days),
		zap.Int("total_days", age.TotalDays),
	)

	return a.printer.Print(output.Report{
		Birth:     a.cfg.BirthDate,
		Reference: reference,
		Age:       age,
		Greet:     a.greets(),
	})
}

// greets reports whether a birthday greeting may be printed. Year-only dates
// carry no real month and day, so they never trigger one.
func (a *App) greets() bool {
	return a.cfg.Verbosity != config.Quiet && !a.cfg.BirthYearOnly && !a.cfg.ReferenceYearOnly
}

// ExitCode maps an error returned by config.Load or Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrConfigNotFound):
		return ExitConfigNotFound
	case errors.Is(err, config.ErrConfigParse):
		return ExitConfigParse
	case errors.Is(err, calendar.ErrInvalidDateFormat):
		return ExitInvalidDate
	case errors.Is(err, calculator.ErrFutureBirthDate):
		return ExitFutureBirth
	default:
		return ExitFailure
	}
}

// LogLevel maps verbosity to the minimum enabled log level.
func LogLevel(v config.Verbosity) zapcore.Level {
	switch v {
	case config.Quiet:
		return zapcore.ErrorLevel
	case config.Verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}
