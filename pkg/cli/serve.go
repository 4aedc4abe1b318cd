/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/nikstur/uapi-version/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve version comparison over HTTP",
		Description: `Start an HTTP API with compare, sort and latest endpoints, health and
readiness checks and Prometheus metrics on /metrics. The server stops
gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to listen on (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Requests per second allowed across all clients",
			},
			&cli.IntFlag{
				Name:  "rate-burst",
				Usage: "Burst size for the rate limiter",
			},
			&cli.IntFlag{
				Name:  "max-versions",
				Usage: "Maximum number of versions accepted per request",
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Usage:   "Time allowed for in-flight requests on shutdown",
				Sources: cli.EnvVars("SHUTDOWN_TIMEOUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := serverConfig(cmd)
			slog.Debug("server config",
				"address", cfg.Addr(),
				"rateLimit", float64(cfg.RateLimit),
				"rateLimitBurst", cfg.RateLimitBurst,
				"maxVersions", cfg.MaxVersions,
				"shutdownTimeout", cfg.ShutdownTimeout.String())

			s := server.New(
				server.WithConfig(cfg),
				server.WithName(name),
				server.WithVersion(appVersion),
			)
			return s.Start(ctx)
		},
	}
}

// serverConfig overlays flags that were set on the environment defaults.
func serverConfig(cmd *cli.Command) *server.Config {
	cfg := server.NewConfig()
	cfg.Address = cmd.String("address")
	cfg.Port = cmd.Int("port")
	if cmd.IsSet("rate-limit") {
		cfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	}
	if cmd.IsSet("rate-burst") {
		cfg.RateLimitBurst = cmd.Int("rate-burst")
	}
	if cmd.IsSet("max-versions") {
		cfg.MaxVersions = cmd.Int("max-versions")
	}
	if d := cmd.Duration("shutdown-timeout"); d > 0 {
		cfg.ShutdownTimeout = d
	}
	return cfg
}
