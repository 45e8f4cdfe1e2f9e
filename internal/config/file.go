package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/adam-gaia/howoldami/internal/calendar"
)

// fileConfig is the configuration file structure shared by TOML and YAML.
// birthday and birthyear are accepted for files written for older releases.
type fileConfig struct {
	BirthDate     dateValue `toml:"birth_date" yaml:"birth_date"`
	BirthYear     yearValue `toml:"birth_year" yaml:"birth_year"`
	Birthday      dateValue `toml:"birthday" yaml:"birthday"`
	Birthyear     yearValue `toml:"birthyear" yaml:"birthyear"`
	DateFormat    string    `toml:"date_format" yaml:"date_format"`
	LeapDayPolicy string    `toml:"leap_day_policy" yaml:"leap_day_policy"`
	Output        string    `toml:"output" yaml:"output"`

	unknown []string
}

var knownKeys = map[string]struct{}{
	"birth_date":      {},
	"birth_year":      {},
	"birthday":        {},
	"birthyear":       {},
	"date_format":     {},
	"leap_day_policy": {},
	"output":          {},
}

// loadFromFile reads path and decodes it according to its extension.
// Anything other than .yaml or .yml is read as TOML.
func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fc *fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fc, err = decodeYAML(data)
	default:
		fc, err = decodeTOML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	return fc, nil
}

func decodeTOML(data []byte) (*fileConfig, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, err
	}
	for _, key := range md.Undecoded() {
		fc.unknown = append(fc.unknown, key.String())
	}
	return &fc, nil
}

func decodeYAML(data []byte) (*fileConfig, error) {
	var fc fileConfig
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &fc, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", doc.Line)
	}
	if err := doc.Decode(&fc); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		if _, ok := knownKeys[key]; !ok {
			fc.unknown = append(fc.unknown, key)
		}
	}
	return &fc, nil
}

// dateValue holds either a date string, parsed later with the configured
// format, or a native TOML local date.
type dateValue struct {
	raw    string
	native calendar.Date
}

func (v *dateValue) UnmarshalTOML(data any) error {
	switch t := data.(type) {
	case string:
		v.raw = t
	case time.Time:
		v.native = calendar.FromTime(t)
	default:
		return fmt.Errorf("expected a date or a string, got %T", data)
	}
	return nil
}

func (v *dateValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a date string", node.Line)
	}
	v.raw = node.Value
	return nil
}

// yearValue accepts both birth_year = 1998 and birth_year = "1998".
type yearValue string

func (y *yearValue) UnmarshalTOML(data any) error {
	switch t := data.(type) {
	case int64:
		*y = yearValue(strconv.FormatInt(t, 10))
	case string:
		*y = yearValue(t)
	default:
		return fmt.Errorf("expected a year, got %T", data)
	}
	return nil
}

func (y *yearValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a year", node.Line)
	}
	*y = yearValue(node.Value)
	return nil
}
