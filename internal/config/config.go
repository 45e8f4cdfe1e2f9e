package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adam-gaia/howoldami/internal/calculator"
	"github.com/adam-gaia/howoldami/internal/calendar"
	"github.com/adam-gaia/howoldami/internal/output"
)

// AppName names the per-user configuration directory.
const AppName = "howoldami"

const (
	envConfigFile    = "HOWOLDAMI_CONFIG"
	envBirthDate     = "HOWOLDAMI_BIRTH_DATE"
	envBirthYear     = "HOWOLDAMI_BIRTH_YEAR"
	envDateFormat    = "HOWOLDAMI_DATE_FORMAT"
	envLeapDayPolicy = "HOWOLDAMI_LEAP_DAY_POLICY"
	envOutput        = "HOWOLDAMI_OUTPUT"
)

// configFileNames are tried in order inside the configuration directory.
var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Verbosity controls how chatty the tool is on stderr.
type Verbosity int

const (
	Normal Verbosity = iota
	Quiet
	Verbose
)

func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	default:
		return "normal"
	}
}

// Config is the resolved, validated configuration for one run.
type Config struct {
	// File is the configuration file that was read, empty when none was.
	File string
	// UnknownKeys lists keys present in File that were ignored.
	UnknownKeys []string

	BirthDate     calendar.Date
	BirthYearOnly bool

	// ReferenceDate is the zero Date when age should be computed against today.
	ReferenceDate     calendar.Date
	ReferenceYearOnly bool

	DateFormat    calendar.Format
	LeapDayPolicy calculator.LeapDayPolicy
	Output        output.Mode
	Verbosity     Verbosity
	LogJSON       bool
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile    string
	BirthDate     *string
	BirthYear     *string
	ReferenceDate *string
	ReferenceYear *string
	DateFormat    *string
	LeapDayPolicy *string
	Output        *string
	Verbosity     Verbosity
	LogJSON       bool
}

// settings collects raw values while layers are applied.
type settings struct {
	birthDate     string
	birthNative   calendar.Date
	birthYear     string
	dateFormat    string
	leapDayPolicy string
	output        string
}

// Load resolves configuration with precedence:
// CLI flags > environment variables > configuration file > defaults
func Load(overrides *CLIOverrides) (Config, error) {
	if overrides == nil {
		overrides = &CLIOverrides{}
	}
	cfg := defaultConfig()
	var s settings

	var missing error
	path, explicit := resolvePath(overrides.ConfigFile)
	if path == "" {
		missing = fmt.Errorf("%w: user configuration directory is unavailable", ErrConfigNotFound)
	} else {
		fc, err := loadFromFile(path)
		switch {
		case err == nil:
			cfg.File = path
			cfg.UnknownKeys = fc.unknown
			s.applyFile(fc)
		case errors.Is(err, ErrConfigNotFound) && !explicit:
			missing = err
		default:
			return Config{}, err
		}
	}

	s.applyEnv()
	s.applyCLI(overrides)

	cfg.Verbosity = overrides.Verbosity
	cfg.LogJSON = overrides.LogJSON

	if err := s.resolve(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.BirthDate.IsZero() {
		if missing != nil {
			return Config{}, missing
		}
		return Config{}, fmt.Errorf("%w: %s: birth_date is required", ErrConfigParse, cfg.File)
	}

	if err := resolveReference(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DefaultPath returns the configuration file inside the per-user configuration
// directory. When none of the accepted file names exist the TOML name is returned.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return findConfigFile(filepath.Join(dir, AppName)), nil
}

func defaultConfig() Config {
	return Config{
		DateFormat:    calendar.ISO,
		LeapDayPolicy: calculator.RollForward,
		Output:        output.Years,
		Verbosity:     Normal,
	}
}

// resolvePath reports the file to read and whether the user named it explicitly.
func resolvePath(flagPath string) (string, bool) {
	if flagPath = strings.TrimSpace(flagPath); flagPath != "" {
		return flagPath, true
	}
	if envPath := env(envConfigFile); envPath != "" {
		return envPath, true
	}
	path, err := DefaultPath()
	if err != nil {
		return "", false
	}
	return path, false
}

func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(dir, configFileNames[0])
}

// setBirth replaces the birth date from a lower layer. A full date wins over
// a year given in the same layer.
func (s *settings) setBirth(date string, native calendar.Date, year string) {
	switch {
	case date != "" || !native.IsZero():
		s.birthDate, s.birthNative, s.birthYear = date, native, ""
	case year != "":
		s.birthDate, s.birthNative, s.birthYear = "", calendar.Date{}, year
	}
}

func (s *settings) applyFile(fc *fileConfig) {
	s.setBirth(fc.Birthday.raw, fc.Birthday.native, string(fc.Birthyear))
	s.setBirth(fc.BirthDate.raw, fc.BirthDate.native, string(fc.BirthYear))

	if fc.DateFormat != "" {
		s.dateFormat = fc.DateFormat
	}
	if fc.LeapDayPolicy != "" {
		s.leapDayPolicy = fc.LeapDayPolicy
	}
	if fc.Output != "" {
		s.output = fc.Output
	}
}

func (s *settings) applyEnv() {
	s.setBirth(env(envBirthDate), calendar.Date{}, env(envBirthYear))

	if v := env(envDateFormat); v != "" {
		s.dateFormat = v
	}
	if v := env(envLeapDayPolicy); v != "" {
		s.leapDayPolicy = v
	}
	if v := env(envOutput); v != "" {
		s.output = v
	}
}

func (s *settings) applyCLI(o *CLIOverrides) {
	s.setBirth(deref(o.BirthDate), calendar.Date{}, deref(o.BirthYear))

	if v := deref(o.DateFormat); v != "" {
		s.dateFormat = v
	}
	if v := deref(o.LeapDayPolicy); v != "" {
		s.leapDayPolicy = v
	}
	if v := deref(o.Output); v != "" {
		s.output = v
	}
}

// resolve validates the collected values and stores them in cfg.
func (s *settings) resolve(cfg *Config) error {
	if s.dateFormat != "" {
		format, err := calendar.ParseFormat(s.dateFormat)
		if err != nil {
			return fmt.Errorf("%w: date_format: %w", ErrConfigParse, err)
		}
		cfg.DateFormat = format
	}

	if s.leapDayPolicy != "" {
		policy, err := calculator.ParseLeapDayPolicy(s.leapDayPolicy)
		if err != nil {
			return fmt.Errorf("%w: leap_day_policy: %w", ErrConfigParse, err)
		}
		cfg.LeapDayPolicy = policy
	}

	if s.output != "" {
		mode, err := output.ParseMode(s.output)
		if err != nil {
			return fmt.Errorf("%w: output: %w", ErrConfigParse, err)
		}
		cfg.Output = mode
	}

	switch {
	case !s.birthNative.IsZero():
		cfg.BirthDate = s.birthNative
	case s.birthDate != "":
		birth, err := cfg.DateFormat.Parse(s.birthDate)
		if err != nil {
			return fmt.Errorf("birth_date: %w", err)
		}
		cfg.BirthDate = birth
	case s.birthYear != "":
		birth, err := calendar.ParseYear(s.birthYear)
		if err != nil {
			return fmt.Errorf("birth_year: %w", err)
		}
		cfg.BirthDate = birth
		cfg.BirthYearOnly = true
	}

	return nil
}

func resolveReference(cfg *Config, o *CLIOverrides) error {
	if date := deref(o.ReferenceDate); date != "" {
		ref, err := cfg.DateFormat.Parse(date)
		if err != nil {
			return fmt.Errorf("reference date: %w", err)
		}
		cfg.ReferenceDate = ref
		return nil
	}
	if year := deref(o.ReferenceYear); year != "" {
		ref, err := calendar.ParseYear(year)
		if err != nil {
			return fmt.Errorf("reference year: %w", err)
		}
		cfg.ReferenceDate = ref
		cfg.ReferenceYearOnly = true
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
