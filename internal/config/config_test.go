package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/adam-gaia/howoldami/internal/calculator"
	"github.com/adam-gaia/howoldami/internal/calendar"
	"github.com/adam-gaia/howoldami/internal/output"
)

// isolate points every configuration source at an empty temporary home.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	for _, key := range []string{envConfigFile, envBirthDate, envBirthYear, envDateFormat, envLeapDayPolicy, envOutput} {
		t.Setenv(key, "")
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir: %v", err)
	}
	return filepath.Join(dir, AppName)
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func strPtr(s string) *string { return &s }

func TestLoadFromDefaultDirectory(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.toml", `birth_date = "2000-06-15"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.File != path {
		t.Fatalf("expected file %s, got %s", path, cfg.File)
	}
	if want := (calendar.Date{Year: 2000, Month: time.June, Day: 15}); cfg.BirthDate != want {
		t.Fatalf("expected birth date %s, got %s", want, cfg.BirthDate)
	}
	if cfg.BirthYearOnly {
		t.Fatalf("did not expect a year-only birth date")
	}
	if !cfg.ReferenceDate.IsZero() {
		t.Fatalf("expected reference date to default to today, got %s", cfg.ReferenceDate)
	}
	if cfg.DateFormat != calendar.ISO || cfg.LeapDayPolicy != calculator.RollForward || cfg.Output != output.Years {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	isolate(t)

	if _, err := Load(nil); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadMissingFileToleratedWhenBirthDateGiven(t *testing.T) {
	isolate(t)

	cfg, err := Load(&CLIOverrides{BirthDate: strPtr("1998-01-01")})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.File != "" {
		t.Fatalf("expected no configuration file, got %s", cfg.File)
	}
	if cfg.BirthDate.Year != 1998 {
		t.Fatalf("unexpected birth date %s", cfg.BirthDate)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(&CLIOverrides{
		ConfigFile: filepath.Join(t.TempDir(), "nope.toml"),
		BirthDate:  strPtr("1998-01-01"),
	})
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadMissingBirthDate(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.toml", "output = \"full\"\n")

	if _, err := Load(nil); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
}

func TestLoadMalformedDocuments(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{name: "TOMLSyntax", file: "config.toml", contents: "birth_date = \n"},
		{name: "TOMLWrongType", file: "config.toml", contents: "birth_date = 12\n"},
		{name: "YAMLSyntax", file: "config.yaml", contents: "birth_date: [1998\n"},
		{name: "YAMLNotMapping", file: "config.yaml", contents: "- 1998-01-01\n"},
		{name: "UnknownFormat", file: "config.toml", contents: "birth_date = \"1998-01-01\"\ndate_format = \"ABC-\"\n"},
		{name: "UnknownLeapDayPolicy", file: "config.toml", contents: "birth_date = \"1998-01-01\"\nleap_day_policy = \"never\"\n"},
		{name: "UnknownOutput", file: "config.toml", contents: "birth_date = \"1998-01-01\"\noutput = \"xml\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, dir, tc.file, tc.contents)

			if _, err := Load(nil); !errors.Is(err, ErrConfigParse) {
				t.Fatalf("expected ErrConfigParse, got %v", err)
			}
		})
	}
}

func TestLoadInvalidBirthDate(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.toml", `birth_date = "1999-02-29"`)

	if _, err := Load(nil); !errors.Is(err, calendar.ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestLoadTOMLFeatures(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.toml", `
birth_date = 1998-03-07
leap_day_policy = "feb28"
output = "json"

[profile]
name = "someone"
`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := (calendar.Date{Year: 1998, Month: time.March, Day: 7}); cfg.BirthDate != want {
		t.Fatalf("expected native TOML date %s, got %s", want, cfg.BirthDate)
	}
	if cfg.LeapDayPolicy != calculator.ClampToMonthEnd {
		t.Fatalf("expected feb28 policy, got %s", cfg.LeapDayPolicy)
	}
	if cfg.Output != output.JSON {
		t.Fatalf("expected json output, got %s", cfg.Output)
	}
	if !slices.Contains(cfg.UnknownKeys, "profile.name") {
		t.Fatalf("expected profile.name to be reported unknown, got %v", cfg.UnknownKeys)
	}
}

func TestLoadYAMLWithCustomFormat(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.yaml", `
birth_date: "15.06.2000"
date_format: "DMY."
extra: true
`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected YAML file to be picked up, got %q", cfg.File)
	}
	if want := (calendar.Date{Year: 2000, Month: time.June, Day: 15}); cfg.BirthDate != want {
		t.Fatalf("expected %s, got %s", want, cfg.BirthDate)
	}
	if !slices.Equal(cfg.UnknownKeys, []string{"extra"}) {
		t.Fatalf("unexpected unknown keys %v", cfg.UnknownKeys)
	}
}

func TestLoadBirthYear(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{name: "TOMLInteger", file: "config.toml", contents: "birth_year = 1998\n"},
		{name: "TOMLString", file: "config.toml", contents: "birthyear = \"1998\"\n"},
		{name: "YAML", file: "config.yml", contents: "birth_year: 1998\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, dir, tc.file, tc.contents)

			cfg, err := Load(nil)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if want := (calendar.Date{Year: 1998, Month: time.January, Day: 1}); cfg.BirthDate != want {
				t.Fatalf("expected %s, got %s", want, cfg.BirthDate)
			}
			if !cfg.BirthYearOnly {
				t.Fatalf("expected year-only birth date")
			}
		})
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.toml", "birth_date = \"1990-01-01\"\noutput = \"full\"\n")

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv(envBirthDate, "1991-02-02")
		t.Setenv(envOutput, "json")

		cfg, err := Load(nil)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.BirthDate.Year != 1991 || cfg.Output != output.JSON {
			t.Fatalf("expected environment to win, got %+v", cfg)
		}
	})

	t.Run("CLIOverridesEnv", func(t *testing.T) {
		t.Setenv(envBirthDate, "1991-02-02")

		cfg, err := Load(&CLIOverrides{BirthYear: strPtr("1992"), Output: strPtr("years")})
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.BirthDate.Year != 1992 || !cfg.BirthYearOnly {
			t.Fatalf("expected CLI birth year to replace the env birth date, got %+v", cfg)
		}
		if cfg.Output != output.Years {
			t.Fatalf("expected CLI output mode, got %s", cfg.Output)
		}
	})

	t.Run("EnvFormatAppliesToFileDate", func(t *testing.T) {
		t.Setenv(envDateFormat, "MDY/")

		if _, err := Load(nil); !errors.Is(err, calendar.ErrInvalidDateFormat) {
			t.Fatalf("expected file date to be read with the MDY format, got %v", err)
		}
	})
}

func TestLoadExplicitFileFromEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", "birthday: 2001-09-09\n")
	t.Setenv(envConfigFile, path)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.File != path || cfg.BirthDate.Year != 2001 {
		t.Fatalf("unexpected configuration %+v", cfg)
	}
}

func TestLoadReferenceDate(t *testing.T) {
	isolate(t)

	cfg, err := Load(&CLIOverrides{
		BirthDate:     strPtr("01/02/1998"),
		ReferenceDate: strPtr("01/01/2024"),
		DateFormat:    strPtr("MDY/"),
		Verbosity:     Verbose,
		LogJSON:       true,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := (calendar.Date{Year: 2024, Month: time.January, Day: 1}); cfg.ReferenceDate != want {
		t.Fatalf("expected reference %s, got %s", want, cfg.ReferenceDate)
	}
	if cfg.Verbosity != Verbose || !cfg.LogJSON {
		t.Fatalf("expected CLI-only settings to be carried, got %+v", cfg)
	}

	cfg, err = Load(&CLIOverrides{BirthDate: strPtr("1998-01-02"), ReferenceYear: strPtr("2030")})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ReferenceDate.Year != 2030 || !cfg.ReferenceYearOnly {
		t.Fatalf("expected year-only reference date, got %+v", cfg)
	}

	if _, err := Load(&CLIOverrides{BirthDate: strPtr("1998-01-02"), ReferenceDate: strPtr("tomorrow")}); !errors.Is(err, calendar.ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat for bad reference date, got %v", err)
	}
}

func TestDefaultPathPrefersTOML(t *testing.T) {
	dir := isolate(t)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath returned error: %v", err)
	}
	if want := filepath.Join(dir, "config.toml"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}

	writeFile(t, dir, "config.yml", "birth_year: 1990\n")
	writeFile(t, dir, "config.yaml", "birth_year: 1991\n")
	path, _ = DefaultPath()
	if want := filepath.Join(dir, "config.yaml"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}
