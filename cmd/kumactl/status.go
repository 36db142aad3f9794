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

	"github.com/spf13/cobra"
)

func newStatusCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the Uptime Kuma API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := root.client()
			if err != nil {
				return err
			}

			health, err := c.GetHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reach %s: %w", c.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (version %s, database %s)\n", c.BaseURL(), health.Status, health.Version, health.Database)
			if !health.OK || health.Status != "healthy" {
				return fmt.Errorf("uptime kuma is %s", health.Status)
			}
			return nil
		},
	}
}
