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
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/benn447/uptime-kuma/declarative/internal/resource"
	"github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// envPrefix prefixes the environment variables read for every flag, so
// --api-key may be given as KUMA_API_KEY
const envPrefix = "KUMA"

// connection is how kumactl reaches the Uptime Kuma API
type connection struct {
	URL        string        `mapstructure:"url" validate:"required,url"`
	APIKey     string        `mapstructure:"api-key"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Insecure   bool          `mapstructure:"insecure"`
	NestedMode string        `mapstructure:"nested-mode" validate:"oneof=exact subset"`
}

type rootOptions struct {
	viper   *viper.Viper
	cfgFile string
	verbose bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{viper: viper.New()}
	opts.viper.SetEnvPrefix(envPrefix)
	opts.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.viper.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "kumactl",
		Short:         "Declaratively manage Uptime Kuma",
		Long:          "kumactl reconciles Uptime Kuma monitors, notifications, maintenance windows and more from YAML manifests.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("url", "", "Uptime Kuma API URL (env KUMA_URL)")
	flags.String("api-key", "", "API key (env KUMA_API_KEY)")
	flags.Duration("timeout", client.DefaultTimeout, "Request timeout")
	flags.Bool("insecure", false, "Skip TLS certificate verification")
	flags.String("nested-mode", reconcile.NestedExact.String(), "How nested mappings are compared: exact or subset")
	flags.StringVar(&opts.cfgFile, "config", "", "Config file holding the flags above")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every reconcile step")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	_ = opts.viper.BindPFlags(flags)

	cmd.AddCommand(newApplyCmd(opts))
	cmd.AddCommand(newDiffCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newKindsCmd())
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup reads the config file and puts a logger into the command context
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.noColor {
		color.NoColor = true
	}

	if o.cfgFile != "" {
		o.viper.SetConfigFile(o.cfgFile)
		if err := o.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	logger := zap.New(zap.WriteTo(cmd.ErrOrStderr()), zap.Level(level))
	cmd.SetContext(log.IntoContext(cmd.Context(), logger))
	return nil
}

func (o *rootOptions) connection() (*connection, error) {
	var conn connection
	hook := viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())
	if err := o.viper.Unmarshal(&conn, hook); err != nil {
		return nil, fmt.Errorf("failed to read connection settings: %w", err)
	}

	if err := validator.New().Struct(&conn); err != nil {
		return nil, fmt.Errorf("invalid connection settings: %w", err)
	}
	return &conn, nil
}

func (o *rootOptions) client() (*client.Client, *connection, error) {
	conn, err := o.connection()
	if err != nil {
		return nil, nil, err
	}
	return client.NewClient(client.Config{
		BaseURL:            strings.TrimSuffix(conn.URL, "/"),
		APIKey:             conn.APIKey,
		Timeout:            conn.Timeout,
		InsecureSkipVerify: conn.Insecure,
	}), conn, nil
}

func (o *rootOptions) reconciler() (*resource.Reconciler, error) {
	c, conn, err := o.client()
	if err != nil {
		return nil, err
	}

	registry, err := resource.DefaultRegistry(c, nil)
	if err != nil {
		return nil, err
	}

	mode := reconcile.NestedExact
	if conn.NestedMode == reconcile.NestedSubset.String() {
		mode = reconcile.NestedSubset
	}
	return resource.NewReconciler(registry, resource.WithNestedMode(mode)), nil
}
