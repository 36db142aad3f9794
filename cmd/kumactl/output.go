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

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/benn447/uptime-kuma/declarative/internal/manifest"
	"github.com/benn447/uptime-kuma/declarative/internal/resource"
)

var (
	createColor = color.New(color.FgGreen)
	updateColor = color.New(color.FgYellow)
	deleteColor = color.New(color.FgRed)
	toggleColor = color.New(color.FgCyan)
	noneColor   = color.New(color.Faint)
)

// tally counts results by action
type tally struct {
	created, updated, deleted, toggled, unchanged, failed int
}

func (t *tally) add(action resource.Action) {
	switch action {
	case resource.ActionCreate:
		t.created++
	case resource.ActionUpdate:
		t.updated++
	case resource.ActionDelete:
		t.deleted++
	case resource.ActionNone:
		t.unchanged++
	default:
		t.toggled++
	}
}

func (t *tally) changed() bool {
	return t.created+t.updated+t.deleted+t.toggled > 0
}

// printer renders reconcile results one resource per line, followed by the
// changed fields
type printer struct {
	out   io.Writer
	tally tally
}

func (p *printer) result(res *resource.Result) {
	p.tally.add(res.Action)

	symbol, c := "=", noneColor
	switch res.Action {
	case resource.ActionCreate:
		symbol, c = "+", createColor
	case resource.ActionUpdate:
		symbol, c = "~", updateColor
	case resource.ActionDelete:
		symbol, c = "-", deleteColor
	case resource.ActionNone:
	default:
		symbol, c = "~", toggleColor
	}

	c.Fprintf(p.out, "%s %s %s", symbol, res.Kind, res.Name)
	fmt.Fprintf(p.out, " (%s)\n", res.Action)
	for _, change := range res.ChangeSet {
		fmt.Fprintf(p.out, "    %s\n", change)
	}
	if key, ok := res.Extra["key"]; ok {
		fmt.Fprintf(p.out, "    key: %v\n", key)
	}
}

func (p *printer) failure(doc *manifest.Document, err error) {
	p.tally.failed++
	deleteColor.Fprintf(p.out, "✗ %s %s\n", doc.Kind, doc.Location())
	fmt.Fprintf(p.out, "    %v\n", err)
}

func (p *printer) summary(verb string) {
	t := p.tally
	fmt.Fprintf(p.out, "\n%s: %d to create, %d to update, %d to delete, %d to toggle, %d unchanged, %d failed\n",
		verb, t.created, t.updated, t.deleted, t.toggled, t.unchanged, t.failed)
}

func requestFor(doc *manifest.Document, dryRun bool) resource.Request {
	return resource.Request{
		Kind:   doc.Kind,
		State:  doc.State,
		Spec:   doc.Spec,
		Ignore: doc.Ignore,
		DryRun: dryRun,
	}
}
