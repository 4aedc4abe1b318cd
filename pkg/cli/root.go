/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/logging"
)

const (
	name           = "uapi-version"
	versionDefault = "dev"

	exitError    = 1
	exitCanceled = 2
)

var (
	// overridden during build with ldflags
	appVersion = versionDefault
	commit     = "unknown"
	date       = "unknown"
)

// newRootCmd builds the command tree. Tests run it with their own readers
// and writers.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Compare and sort version strings using the UAPI Version Format",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", appVersion, commit, date),
		EnableShellCompletion: true,
		Description: `uapi-version orders version strings the way systemd and the major Linux
package managers do:

  ~ < end of string < - < ^ < . < letters < digits

Digit runs compare numerically and ignore leading zeros, letter runs compare
byte-wise, and any other character is ignored.`,
		Flags: []cli.Flag{
			logLevelFlag,
			formatFlag,
			outputFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String("log-level"))
			return ctx, nil
		},
		// Errors are reported once, by Execute.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			compareCmd(),
			sortCmd(),
			latestCmd(),
			tagsCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI with the process arguments and exits on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// run executes the root command and maps its error to an exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	err := newRootCmd().Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintln(stderr, err)
	if apperrors.CodeOf(err) == apperrors.ErrCodeCanceled || errors.Is(err, context.Canceled) {
		return exitCanceled
	}
	return exitError
}

// initLogger configures slog after flags are parsed so overrides like
// --log-level take effect before any command executes.
func initLogger(level string) {
	logging.SetDefaultStructuredLoggerWithLevel(name, appVersion, level)
	slog.Debug("starting",
		"name", name,
		"version", appVersion,
		"commit", commit,
		"date", date,
		"logLevel", level)
}
