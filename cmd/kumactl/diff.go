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
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/benn447/uptime-kuma/declarative/internal/manifest"
	"github.com/benn447/uptime-kuma/declarative/internal/resource"
)

// errChangesPending is returned by diff --exit-code when something would change
var errChangesPending = errors.New("changes pending")

const diffLong = `Show what apply would change, without writing anything.

Documents are compared concurrently. A document referencing a record that
an earlier document would create reports a missing reference.

With --exit-code the command exits 2 when any resource would change.`

type diffOptions struct {
	files       []string
	concurrency int
	exitCode    bool
}

func newDiffCmd(root *rootOptions) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff -f FILE...",
		Short: "Show the changes apply would make",
		Long:  diffLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := loadDocuments(cmd, opts.files)
			if err != nil {
				return err
			}
			r, err := root.reconciler()
			if err != nil {
				return err
			}

			p := &printer{out: cmd.OutOrStdout()}
			err = runDiff(cmd.Context(), r, docs, opts.concurrency, p)
			p.summary("Plan")
			if err != nil {
				return err
			}
			if opts.exitCode && p.tally.changed() {
				return errChangesPending
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.files, "filename", "f", nil, "Manifest file, or - for stdin (repeatable)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", runtime.NumCPU(), "Documents compared at once")
	cmd.Flags().BoolVar(&opts.exitCode, "exit-code", false, "Exit with status 2 when changes are pending")
	_ = cmd.MarkFlagRequired("filename")

	return cmd
}

// runDiff dry-runs every document and prints the results in document order
func runDiff(ctx context.Context, r *resource.Reconciler, docs []manifest.Document, concurrency int, p *printer) error {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*resource.Result, len(docs))
	failures := make([]error, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range docs {
		i := i
		g.Go(func() error {
			results[i], failures[i] = r.Reconcile(gctx, requestFor(&docs[i], true))
			return nil
		})
	}
	_ = g.Wait()

	var errs *multierror.Error
	for i := range docs {
		if failures[i] != nil {
			p.failure(&docs[i], failures[i])
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", docs[i].Location(), failures[i]))
			continue
		}
		p.result(results[i])
	}
	return errs.ErrorOrNil()
}
