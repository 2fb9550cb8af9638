package main

import (
	"fmt"

	"calcservice/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "calcservice",
		Short: "Arithmetic and trigonometry calculation API",
		Long: `calcservice serves two stateless calculation APIs over HTTP:
/arithmetic (add, subtract, multiply, divide, chain) and /trigonometry
(sin, cos, tan and a right-triangle solver).

Settings come from flags, CALC_* environment variables and a .env file,
in that order of precedence. Telemetry is exported over OTLP/HTTP using the
standard OTEL_EXPORTER_OTLP_* variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.String("host", d.Host, "Host to bind to")
	flags.Int("port", d.Port, "Port to listen on")
	flags.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
	flags.Duration("shutdown-timeout", d.ShutdownTimeout, "Time allowed for in-flight requests on shutdown")
	flags.Bool("telemetry", d.TelemetryEnabled, "Export traces, metrics and logs over OTLP")

	if err := bindFlags(v, cmd); err != nil {
		panic(err)
	}

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyHost:             "host",
		config.KeyPort:             "port",
		config.KeyLogLevel:         "log-level",
		config.KeyShutdownTimeout:  "shutdown-timeout",
		config.KeyTelemetryEnabled: "telemetry",
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}
