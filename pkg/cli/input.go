/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nikstur/uapi-version/pkg/defaults"
	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/serializer"
)

// stdinPath selects standard input as a source.
const stdinPath = "-"

// readLists loads a list from every path concurrently and concatenates the
// results in argument order. No paths means standard input.
func readLists[T any](ctx context.Context, cmd *cli.Command, paths []string) ([]T, error) {
	if len(paths) == 0 {
		paths = []string{stdinPath}
	}
	if countOf(paths, stdinPath) > 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "standard input can be read only once")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CLIReadTimeout)
	defer cancel()

	httpReader := serializer.NewHttpReader()
	results := make([][]T, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.CLIMaxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			list, err := readList[T](gctx, cmd, path, httpReader)
			if err != nil {
				return err
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}

func readList[T any](ctx context.Context, cmd *cli.Command, path string, httpReader *serializer.HttpReader) ([]T, error) {
	if path == stdinPath {
		reader, err := serializer.NewReader(serializer.FormatText, io.NopCloser(cmd.Root().Reader))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create reader", err)
		}
		var list []T
		if err := reader.Deserialize(&list); err != nil {
			return nil, inputError(err, path)
		}
		return list, nil
	}

	list, err := serializer.FromFile[[]T](ctx, path, serializer.WithHttpReader(httpReader))
	if err != nil {
		return nil, inputError(err, path)
	}
	return *list, nil
}

func inputError(err error, path string) error {
	ctx := map[string]any{"input": path}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "input not found", err, ctx)
	case errors.Is(err, context.Canceled):
		return apperrors.WrapWithContext(apperrors.ErrCodeCanceled, "reading input canceled", err, ctx)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapWithContext(apperrors.ErrCodeTimeout, "reading input timed out", err, ctx)
	default:
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "failed to read input", err, ctx)
	}
}

func countOf(ss []string, s string) int {
	n := 0
	for _, v := range ss {
		if v == s {
			n++
		}
	}
	return n
}
