/*
Copyright 2026 Ben.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stream = `
kind: monitor
spec:
  name: web
  type: http
  interval: 60
  accepted_statuscodes: ["200-299", "301"]
ignore:
  upsideDown: [false, null]
---
# comment only
---
kind: proxy
state: absent
spec:
  host: 10.0.0.1
  port: 3128
`

func TestLoad(t *testing.T) {
	t.Parallel()

	docs, err := Load(strings.NewReader(stream), "site.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "monitor", docs[0].Kind)
	assert.Equal(t, DefaultState, docs[0].State)
	assert.Equal(t, "web", docs[0].Spec["name"])
	assert.Equal(t, float64(60), docs[0].Spec["interval"])
	assert.Equal(t, []any{false, nil}, docs[0].Ignore["upsideDown"])
	assert.Equal(t, "site.yaml#0", docs[0].Location())

	assert.Equal(t, "proxy", docs[1].Kind)
	assert.Equal(t, "absent", docs[1].State)
	assert.Equal(t, 2, docs[1].Index, "empty documents still count")
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "missing kind", input: "spec: {name: x}\n", want: "kind is required"},
		{name: "bad state", input: "kind: monitor\nstate: gone\n", want: `state "gone" must be one of`},
		{name: "bad kind", input: "kind: Monitor\n", want: "lower case"},
		{name: "unknown key", input: "kind: monitor\nspecs: {}\n", want: "unknown field"},
		{name: "broken yaml", input: "kind: [monitor\n", want: "document 0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.input), "bad.yaml")
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "bad.yaml", perr.Source)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte("kind: tag\nspec: {name: env}\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("kind: settings\nspec: {checkUpdate: false}\n"), 0o600))

	docs, err := LoadFiles(a, b)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].Source)
	assert.Equal(t, "settings", docs[1].Kind)

	_, err = LoadFiles(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

type Embedded struct {
	ID   int     `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

type record struct {
	Embedded
	Interval *int              `json:"interval,omitempty"`
	Codes    []string          `json:"accepted_statuscodes,omitempty"`
	Extra    map[string]any    `json:",remain"`
	Headers  map[string]string `json:"headers,omitempty"`
}

func TestDecodeSpec(t *testing.T) {
	t.Parallel()

	var r record
	err := DecodeSpec(map[string]any{
		"id":                   float64(4),
		"name":                 "web",
		"interval":             float64(60),
		"accepted_statuscodes": []any{"200-299"},
		"description":          nil,
		"webhookURL":           "https://hooks.example",
	}, &r)
	require.NoError(t, err)

	assert.Equal(t, 4, r.ID)
	assert.Equal(t, "web", *r.Name)
	assert.Equal(t, 60, *r.Interval)
	assert.Equal(t, []string{"200-299"}, r.Codes)
	assert.Nil(t, r.Headers)
	assert.Equal(t, "https://hooks.example", r.Extra["webhookURL"])
}

func TestDecodeSpec_UnknownField(t *testing.T) {
	t.Parallel()

	var target struct {
		Name *string `json:"name,omitempty"`
	}
	err := DecodeSpec(map[string]any{"name": "web", "intervall": 60}, &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intervall")
}
