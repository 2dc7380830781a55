// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"rex.json", FormatJSON},
		{"REX.JSON", FormatJSON},
		{"rex.yaml", FormatYAML},
		{"rex.yml", FormatYAML},
		{"report.table", FormatTable},
		{"report.txt", FormatTable},
		{"https://cdn.example.com/rex.yaml?token=abc", FormatYAML},
		{"rex", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestInputFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, InputFormatFromPath("rex.json"))
	assert.Equal(t, FormatYAML, InputFormatFromPath("rex.yml"))
	assert.Equal(t, FormatYAML, InputFormatFromPath("rex"))
	assert.Equal(t, FormatYAML, InputFormatFromPath(StdinPath))
	assert.Equal(t, FormatYAML, InputFormatFromPath("notes.txt"))
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_Deserialize(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"Rex","speed":1.5}`))
		require.NoError(t, err)

		var v map[string]any
		require.NoError(t, r.Deserialize(&v))
		assert.Equal(t, "Rex", v["name"])
		assert.Equal(t, 1.5, v["speed"])
	})

	t.Run("yaml", func(t *testing.T) {
		r, err := NewReader(FormatYAML, strings.NewReader("name: Rex\nversion: [0, 1, 0]\n"))
		require.NoError(t, err)

		var v map[string]any
		require.NoError(t, r.Deserialize(&v))
		assert.Equal(t, []any{0, 1, 0}, v["version"])
	})

	t.Run("malformed", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"name":`))
		require.NoError(t, err)

		var v any
		assert.Error(t, r.Deserialize(&v))
	})

	t.Run("nil reader", func(t *testing.T) {
		var r *Reader
		assert.Error(t, r.Deserialize(&struct{}{}))
		assert.NoError(t, r.Close())
	})
}

func TestReader_CloseIdempotent(t *testing.T) {
	p := writeTemp(t, "rex.json", `{}`)
	r, err := NewFileReader(context.Background(), FormatJSON, p)
	require.NoError(t, err)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestNewFileReader_MissingFile(t *testing.T) {
	_, err := NewFileReader(context.Background(), FormatJSON, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("json file", func(t *testing.T) {
		p := writeTemp(t, "rex.json", `{"type":"M3_pet","version":[0,1,0]}`)
		doc, err := LoadDocument(ctx, p)
		require.NoError(t, err)
		rec, ok := doc.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "M3_pet", rec["type"])
		assert.Equal(t, []any{float64(0), float64(1), float64(0)}, rec["version"])
	})

	t.Run("yaml without extension", func(t *testing.T) {
		p := writeTemp(t, "rex", "type: M3_pet\nname: Rex\n")
		doc, err := LoadDocument(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "M3_pet", "name": "Rex"}, doc)
	})

	t.Run("scalar document", func(t *testing.T) {
		p := writeTemp(t, "n.yaml", "42\n")
		doc, err := LoadDocument(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, 42, doc)
	})

	t.Run("empty", func(t *testing.T) {
		p := writeTemp(t, "empty.json", "")
		doc, err := LoadDocument(ctx, p)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("malformed", func(t *testing.T) {
		p := writeTemp(t, "bad.json", `{"type":`)
		_, err := LoadDocument(ctx, p)
		assert.Error(t, err)
	})

	t.Run("url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("type: M3_pet\n"))
		}))
		defer srv.Close()

		doc, err := LoadDocument(ctx, srv.URL+"/pets/rex.yaml")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "M3_pet"}, doc)
	})

	t.Run("url with options", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.UserAgent()
			_, _ = w.Write([]byte(`{"type":"M3_pet","name":"` + strings.Repeat("x", 64) + `"}`))
		}))
		defer srv.Close()

		_, err := LoadDocument(ctx, srv.URL+"/rex.json", WithUserAgent("petspec/test"), WithMaxBytes(32))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds 32 bytes")
		assert.Equal(t, "petspec/test", gotUA)
	})
}

func TestFromFile(t *testing.T) {
	type emote struct {
		Name      string `yaml:"name"`
		Animation string `yaml:"animation"`
	}
	type pet struct {
		Name   string  `yaml:"name"`
		Emotes []emote `yaml:"emotes"`
	}

	p := writeTemp(t, "rex.yaml", "name: Rex\nemotes:\n  - name: wave\n    animation: wave.anim\n")
	got, err := FromFile[pet](context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	require.Len(t, got.Emotes, 1)
	assert.Equal(t, "wave.anim", got.Emotes[0].Animation)

	_, err = FromFile[pet](context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
