package gesturex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/gesturex"
)

const yamlConfig = `
id: demo
handlers:
  - tag: 1
    kind: pan
    view: 3
    config:
      minDist: 12
      activeOffsetX: [-20, 20]
    waitFor: [2]
  - tag: 2
    kind: fling
    view: 3
    config:
      direction: left
`

const tomlConfig = `
id = "demo"

[[handlers]]
tag = 1
kind = "pan"
view = 3
waitFor = [2]

[handlers.config]
minDist = 12

[[handlers]]
tag = 2
kind = "fling"
view = 3

[handlers.config]
direction = "left"
`

const jsonConfig = `{
  "id": "demo",
  "handlers": [
    {"tag": 1, "kind": "pan", "view": 3, "config": {"minDist": 12}, "waitFor": [2]},
    {"tag": 2, "kind": "fling", "view": 3, "config": {"direction": "left"}}
  ]
}`

func TestParseConfigFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml", FormatYAML, yamlConfig},
		{"toml", FormatTOML, tomlConfig},
		{"json", FormatJSON, jsonConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, "demo", cfg.ID)
			require.Len(t, cfg.Handlers, 2)
			pan, fling := cfg.Handlers[0], cfg.Handlers[1]
			assert.Equal(t, Pan, pan.Kind)
			assert.Equal(t, ViewTag(3), pan.View)
			assert.Equal(t, []HandlerTag{2}, pan.WaitFor)
			assert.Equal(t, 12.0, pan.Config.Float("minDist", 0))
			assert.Equal(t, Fling, fling.Kind)
			assert.Equal(t, Left, fling.Config.Direction("direction", Right))
		})
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	_, err := ParseConfig([]byte(`{"id": "x", "handlers": [{"tag": 1, "kind": "swipe"}]}`), FormatJSON)
	assert.Error(t, err)

	_, err = ParseConfig([]byte("id: x\nhandlers:\n  - {tag: 1, kind: pan}\n  - {tag: 1, kind: tap}\n"), FormatYAML)
	assert.Error(t, err, "duplicate tags")

	_, err = ParseConfig([]byte("{}"), Format("xml"))
	assert.Error(t, err)
}

func TestMarshalConfigRoundTrip(t *testing.T) {
	want, err := ParseConfig([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)

	for _, f := range []Format{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := MarshalConfig(want, f)
			require.NoError(t, err)
			got, err := ParseConfig(data, f)
			require.NoError(t, err)

			opts := cmp.Options{cmp.Comparer(func(a, b Config) bool {
				return a.Float("minDist", 0) == b.Float("minDist", 0) &&
					a.Direction("direction", 0) == b.Direction("direction", 0)
			})}
			if diff := cmp.Diff(want.Handlers, got.Handlers, opts); diff != "" {
				t.Errorf("handlers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gestures.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Handlers, 2)

	_, err = LoadConfig(filepath.Join(dir, "gestures.ini"))
	assert.Error(t, err)
	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
