// Package production provides production integrations: persistence, record
// publishing, visualization. Implements the core interfaces.
package production

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/comalice/gesturex/internal/core"
)

// filePersister stores one snapshot per Root in dir, named <rootID><ext>.
type filePersister struct {
	dir       string
	ext       string
	format    string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func newFilePersister(dir, ext, format string, marshal func(any) ([]byte, error), unmarshal func([]byte, any) error) (filePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filePersister{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return filePersister{dir: dir, ext: ext, format: format, marshal: marshal, unmarshal: unmarshal}, nil
}

func (p filePersister) path(rootID string) string {
	return filepath.Join(p.dir, rootID+p.ext)
}

func (p filePersister) save(ctx context.Context, snapshot core.RootSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := p.marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", p.format, err)
	}
	fn := p.path(snapshot.RootID)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p filePersister) load(ctx context.Context, rootID string) (core.RootSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return core.RootSnapshot{}, err
	}
	fn := p.path(rootID)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.RootSnapshot{}, fmt.Errorf("root %q: %w", rootID, os.ErrNotExist)
		}
		return core.RootSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.RootSnapshot
	if err := p.unmarshal(data, &snapshot); err != nil {
		return core.RootSnapshot{}, fmt.Errorf("%s unmarshal: %w", p.format, err)
	}
	snapshot.RootID = rootID
	if err := snapshot.Config.Validate(); err != nil {
		return core.RootSnapshot{}, fmt.Errorf("config validation after load: %w", err)
	}
	return snapshot, nil
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	fp filePersister
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	fp, err := newFilePersister(dir, ".json", "json",
		func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		json.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &JSONPersister{fp: fp}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.RootSnapshot) error {
	return p.fp.save(ctx, snapshot)
}

func (p *JSONPersister) Load(ctx context.Context, rootID string) (core.RootSnapshot, error) {
	return p.fp.load(ctx, rootID)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	fp filePersister
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	fp, err := newFilePersister(dir, ".yaml", "yaml", yaml.Marshal, yaml.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{fp: fp}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.RootSnapshot) error {
	return p.fp.save(ctx, snapshot)
}

func (p *YAMLPersister) Load(ctx context.Context, rootID string) (core.RootSnapshot, error) {
	return p.fp.load(ctx, rootID)
}

// TOMLPersister is a file-based persister using TOML serialization.
type TOMLPersister struct {
	fp filePersister
}

// NewTOMLPersister creates a TOMLPersister, ensuring the directory exists.
func NewTOMLPersister(dir string) (*TOMLPersister, error) {
	fp, err := newFilePersister(dir, ".toml", "toml", tomlMarshal, toml.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &TOMLPersister{fp: fp}, nil
}

func tomlMarshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *TOMLPersister) Save(ctx context.Context, snapshot core.RootSnapshot) error {
	return p.fp.save(ctx, snapshot)
}

func (p *TOMLPersister) Load(ctx context.Context, rootID string) (core.RootSnapshot, error) {
	return p.fp.load(ctx, rootID)
}
