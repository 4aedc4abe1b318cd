/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"slices"

	"github.com/urfave/cli/v3"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/version"
)

const inputDescription = `Inputs are files, http(s) URLs or - for standard input, which is also
read when no input is given. Files ending in .json hold a JSON array of
strings, files ending in .yaml or .yml a YAML sequence, and anything else one
version per line with blank lines and lines starting with # ignored.`

func sortCmd() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort versions oldest first",
		ArgsUsage: "[INPUT...]",
		Description: `Sort the versions from all inputs together. Equal versions keep their
input order.

` + inputDescription,
		Flags: []cli.Flag{
			reverseFlag,
			&cli.BoolFlag{
				Name:    "unique",
				Aliases: []string{"u"},
				Usage:   "Keep only the first of each run of equal versions (e.g. 1.0 and 1.00)",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "Print nothing and exit 1 unless the input is already sorted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			vs, err := readLists[version.Version](ctx, cmd, cmd.Args().Slice())
			if err != nil {
				return err
			}
			slog.Debug("read versions", "count", len(vs))

			if cmd.Bool("check") {
				sorted := version.IsSorted(vs)
				if cmd.Bool("reverse") {
					sorted = slices.IsSortedFunc(vs, func(a, b version.Version) int { return b.Compare(a) })
				}
				if !sorted {
					return cli.Exit("", exitError)
				}
				return nil
			}

			version.Sort(vs)
			if cmd.Bool("unique") {
				vs = version.Compact(vs)
			}
			if cmd.Bool("reverse") {
				slices.Reverse(vs)
			}

			return writeResult(ctx, cmd, vs)
		},
	}
}

func latestCmd() *cli.Command {
	return &cli.Command{
		Name:      "latest",
		Usage:     "Print the newest version",
		ArgsUsage: "[INPUT...]",
		Description: `Print the newest version from all inputs. When several inputs are equal
versions the first one is printed.

` + inputDescription,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "oldest",
				Usage: "Print the oldest version instead",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			vs, err := readLists[version.Version](ctx, cmd, cmd.Args().Slice())
			if err != nil {
				return err
			}

			pick := version.Max
			if cmd.Bool("oldest") {
				pick = version.Min
			}

			v, ok := pick(vs)
			if !ok {
				return apperrors.New(apperrors.ErrCodeNotFound, "no versions in input")
			}
			return writeResult(ctx, cmd, v)
		},
	}
}
