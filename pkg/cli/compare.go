/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/version"
)

// comparison is the result of the two-argument form of compare.
type comparison struct {
	A      version.Version `json:"a" yaml:"a"`
	B      version.Version `json:"b" yaml:"b"`
	Result string          `json:"result" yaml:"result"`
}

func (c comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.A, c.Result, c.B)
}

// compareOperators maps the operator argument of compare to a test on the
// ordering of A relative to B.
var compareOperators = map[string]func(version.Ordering) bool{
	"lt": func(o version.Ordering) bool { return o == version.Less },
	"le": func(o version.Ordering) bool { return o != version.Greater },
	"eq": func(o version.Ordering) bool { return o == version.Equal },
	"ne": func(o version.Ordering) bool { return o != version.Equal },
	"ge": func(o version.Ordering) bool { return o != version.Less },
	"gt": func(o version.Ordering) bool { return o == version.Greater },
}

func init() {
	for symbol, op := range map[string]string{"<": "lt", "<=": "le", "==": "eq", "!=": "ne", ">=": "ge", ">": "gt"} {
		compareOperators[symbol] = compareOperators[op]
	}
}

func operatorNames() []string {
	names := make([]string, 0, len(compareOperators))
	for name := range compareOperators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two versions",
		ArgsUsage: "A [OP] B",
		Description: `With two arguments, print how A orders relative to B:

  uapi-version compare 1.0~rc1 1.0
  1.0~rc1 < 1.0

With an operator between them, print nothing and exit 0 when the relation
holds and 1 when it does not:

  uapi-version compare 256.1 ge 256~rc3 && echo newer

Operators: lt le eq ne ge gt, or < <= == != >= > (quote them in a shell).
Put -- before the arguments when a version starts with '-'.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			switch len(args) {
			case 2:
				a, b := version.New(args[0]), version.New(args[1])
				return writeResult(ctx, cmd, comparison{A: a, B: b, Result: a.Cmp(b).String()})

			case 3:
				test, ok := compareOperators[strings.ToLower(args[1])]
				if !ok {
					return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
						fmt.Sprintf("unknown operator %q", args[1]),
						map[string]any{"supported": operatorNames()})
				}
				if !test(version.Strverscmp(args[0], args[2])) {
					return cli.Exit("", exitError)
				}
				return nil

			default:
				return apperrors.New(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("compare takes 2 or 3 arguments, got %d", len(args)))
			}
		},
	}
}
