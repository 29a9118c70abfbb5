package gesturex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a RootConfig file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf guesses the format from a file name extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown config format for %s", path)
}

// ParseConfig decodes and validates a RootConfig.
func ParseConfig(data []byte, f Format) (RootConfig, error) {
	var cfg RootConfig
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	default:
		return RootConfig{}, fmt.Errorf("unknown config format %q", f)
	}
	if err != nil {
		return RootConfig{}, fmt.Errorf("%s decode: %w", f, err)
	}
	if err := cfg.Validate(); err != nil {
		return RootConfig{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// MarshalConfig encodes cfg.
func MarshalConfig(cfg RootConfig, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("toml encode: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown config format %q", f)
}

// LoadConfig reads a RootConfig file. The format follows the extension.
func LoadConfig(path string) (RootConfig, error) {
	f, err := FormatOf(path)
	if err != nil {
		return RootConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RootConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfig(data, f)
}
