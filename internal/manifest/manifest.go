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

// Package manifest reads declarative resource documents.
//
// A manifest is a YAML stream of documents separated by "---":
//
//	kind: monitor
//	state: present
//	spec:
//	  name: web
//	  type: http
//	  url: https://example.com
//	ignore:
//	  upsideDown: [false, null]
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// DefaultState applies to documents without a state.
const DefaultState = "present"

// Document is one declared resource
type Document struct {
	Kind   string         `json:"kind" validate:"required,kind_name"`
	State  string         `json:"state,omitempty" validate:"required,oneof=present absent paused resumed enabled disabled"`
	Spec   map[string]any `json:"spec,omitempty"`
	Ignore map[string]any `json:"ignore,omitempty" validate:"omitempty,dive,keys,required,endkeys"`

	// Source and Index locate the document for error messages.
	Source string `json:"-"`
	Index  int    `json:"-"`
}

// Location returns "source#index" for diagnostics
func (d *Document) Location() string {
	return fmt.Sprintf("%s#%d", d.Source, d.Index)
}

// Load reads every document from r. Empty documents are skipped but still
// counted so indexes match the position in the stream.
func Load(r io.Reader, source string) ([]Document, error) {
	dec := yaml.NewDecoder(r)

	var docs []Document
	for index := 0; ; index++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, &ParseError{Source: source, Index: index, Err: err}
		}
		if isEmpty(&node) {
			continue
		}

		doc, err := decodeDocument(&node)
		if err != nil {
			return nil, &ParseError{Source: source, Index: index, Err: err}
		}
		doc.Source = source
		doc.Index = index

		if err := Validate(doc); err != nil {
			return nil, &ParseError{Source: source, Index: index, Err: err}
		}
		docs = append(docs, *doc)
	}
}

// LoadFiles reads the documents of every file in order
func LoadFiles(paths ...string) ([]Document, error) {
	var docs []Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}

		fileDocs, err := Load(bytes.NewReader(data), path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

func decodeDocument(node *yaml.Node) (*Document, error) {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode document: %w", err)
	}

	var doc Document
	if err := sigsyaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.State == "" {
		doc.State = DefaultState
	}
	return &doc, nil
}

func isEmpty(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return true
		}
		inner := node.Content[0]
		return inner.Kind == yaml.ScalarNode && inner.Tag == "!!null"
	}
	return false
}
