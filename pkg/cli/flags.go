/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/logging"
	"github.com/nikstur/uapi-version/pkg/serializer"
)

// EnvFormat overrides the default output format.
const EnvFormat = "UAPI_VERSION_FORMAT"

var (
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatText),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars(EnvFormat),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	reverseFlag = &cli.BoolFlag{
		Name:    "reverse",
		Aliases: []string{"r"},
		Usage:   "Order newest first",
	}
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(strings.ToLower(cmd.String("format")))
	if outFormat.IsUnknown() {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", cmd.String("format")),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return outFormat, nil
}

// writeResult serializes data to --output, or to the command's writer when
// no output file is given.
func writeResult(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var ser *serializer.Writer
	if path := strings.TrimSpace(cmd.String("output")); path != "" && path != "-" {
		ser, err = serializer.NewFileWriterOrStdout(outFormat, path)
		if err != nil {
			return apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to open output", err,
				map[string]any{"output": path})
		}
	} else {
		ser = serializer.NewWriter(outFormat, cmd.Root().Writer)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	if err := ser.Serialize(ctx, data); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write result", err)
	}
	return nil
}
