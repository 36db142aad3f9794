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
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/benn447/uptime-kuma/declarative/internal/manifest"
	"github.com/benn447/uptime-kuma/declarative/internal/resource"
)

const applyLong = `Reconcile every document of the given manifests, in order.

Documents are applied one after another so later documents may reference
records created by earlier ones. A failing document does not stop the
others unless --fail-fast is set.

Examples:
  kumactl apply -f monitors.yaml
  kumactl apply -f notifications.yaml -f monitors.yaml --dry-run
  cat monitors.yaml | kumactl apply -f -`

type applyOptions struct {
	files    []string
	dryRun   bool
	failFast bool
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply -f FILE...",
		Short: "Create, update or delete resources to match the manifests",
		Long:  applyLong,
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
			err = runApply(cmd.Context(), r, docs, opts, p)
			verb := "Applied"
			if opts.dryRun {
				verb = "Plan"
			}
			p.summary(verb)
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&opts.files, "filename", "f", nil, "Manifest file, or - for stdin (repeatable)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing document")
	_ = cmd.MarkFlagRequired("filename")

	return cmd
}

func runApply(ctx context.Context, r *resource.Reconciler, docs []manifest.Document, opts *applyOptions, p *printer) error {
	var errs *multierror.Error
	for i := range docs {
		doc := &docs[i]
		res, err := r.Reconcile(ctx, requestFor(doc, opts.dryRun))
		if err != nil {
			p.failure(doc, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", doc.Location(), err))
			if opts.failFast {
				break
			}
			continue
		}
		p.result(res)
	}
	return errs.ErrorOrNil()
}

// loadDocuments reads the manifests named by files, "-" being stdin
func loadDocuments(cmd *cobra.Command, files []string) ([]manifest.Document, error) {
	var docs []manifest.Document
	for _, file := range files {
		var fileDocs []manifest.Document
		var err error
		if file == "-" {
			fileDocs, err = manifest.Load(cmd.InOrStdin(), "stdin")
		} else {
			fileDocs, err = manifest.LoadFiles(file)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in %v", files)
	}
	return docs, nil
}

