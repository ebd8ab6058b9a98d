package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/errors"
)

// ConfigFormat returns the configuration format implied by path's
// extension: "json", "toml" or "yaml".
func ConfigFormat(path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .json, .toml, .yaml)", ext)
	}
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*config.Config, error) {
	format, err := ConfigFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	cfg, err := ReadConfig(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// ReadConfig decodes a configuration from r. Unknown fields are rejected
// so typos do not silently fall back to defaults.
func ReadConfig(r io.Reader, format string) (*config.Config, error) {
	cfg := &config.Config{}
	switch format {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode: %w", err)
		}
	case "toml":
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown field %s", undecoded[0])
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode: %w", err)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return cfg, nil
}

// WriteConfig encodes cfg to w in the given format.
func WriteConfig(cfg *config.Config, w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
}
