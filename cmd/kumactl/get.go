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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/benn447/uptime-kuma/declarative/internal/resource"
)

type getOptions struct {
	output string
}

func newGetCmd(root *rootOptions) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get KIND [NAME]",
		Short: "Print the records of a kind as stored on the server",
		Example: `  kumactl get monitor
  kumactl get notification ops -o json
  kumactl get status_page -o name`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := root.reconciler()
			if err != nil {
				return err
			}
			kind, err := r.Registry().Get(args[0])
			if err != nil {
				return err
			}

			objects, err := kind.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind.Name(), err)
			}
			if len(args) == 2 {
				objects = filterByName(objects, args[1])
				if len(objects) == 0 {
					return fmt.Errorf("%s %q not found", kind.Name(), args[1])
				}
			}
			return printObjects(cmd.OutOrStdout(), objects, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format: yaml, json or name")
	return cmd
}

func filterByName(objects []*resource.Object, name string) []*resource.Object {
	var out []*resource.Object
	for _, obj := range objects {
		if obj.Name == name {
			out = append(out, obj)
		}
	}
	return out
}

func printObjects(w io.Writer, objects []*resource.Object, format string) error {
	records := make([]any, 0, len(objects))
	for _, obj := range objects {
		records = append(records, obj.Record)
	}

	switch format {
	case "name":
		for _, obj := range objects {
			fmt.Fprintln(w, obj.Name)
		}
		return nil
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
