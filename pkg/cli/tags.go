/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"slices"

	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nikstur/uapi-version/pkg/defaults"
	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/imagetag"
	"github.com/nikstur/uapi-version/pkg/registry"
)

func tagsCmd() *cli.Command {
	return &cli.Command{
		Name:      "tags",
		Usage:     "Order container image references by tag",
		ArgsUsage: "[REF...]",
		Description: `Order image references such as ghcr.io/org/app:1.2 by the version in
their tag. A leading "v" before a digit is ignored. References are read from
standard input, one per line, when none are given.

With --repository the tags are listed from the registry instead:

  uapi-version tags --repository ghcr.io/org/app --latest

With --digest each printed reference is pinned to the digest of the
manifest its tag points to, e.g. ghcr.io/org/app:1.2@sha256:...

Registry credentials are taken from the Docker configuration.`,
		Flags: []cli.Flag{
			reverseFlag,
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Print only the reference with the newest tag",
			},
			&cli.StringFlag{
				Name:    "repository",
				Aliases: []string{"R"},
				Usage:   "List and order the tags of this registry repository",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "digest",
				Usage: "Pin each printed reference to its manifest digest (requires --repository)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Checked before any reference is read from standard input.
			if cmd.Bool("digest") && cmd.String("repository") == "" {
				return apperrors.New(apperrors.ErrCodeInvalidRequest, "--digest requires --repository")
			}

			images, client, err := loadImages(ctx, cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("latest") {
				img, ok := imagetag.Latest(images)
				if !ok {
					return apperrors.New(apperrors.ErrCodeNotFound, "no tagged references")
				}
				images = []imagetag.Image{img}
			} else {
				imagetag.Sort(images)
				if cmd.Bool("reverse") {
					slices.Reverse(images)
				}
			}

			var result any = images
			if cmd.Bool("digest") {
				pinned, err := pinImages(ctx, client, images)
				if err != nil {
					return err
				}
				result = pinned
				if cmd.Bool("latest") {
					result = pinned[0]
				}
			} else if cmd.Bool("latest") {
				result = images[0]
			}
			return writeResult(ctx, cmd, result)
		},
	}
}

// loadImages returns the references to order. The registry client is
// non-nil when the references were listed from --repository.
func loadImages(ctx context.Context, cmd *cli.Command) ([]imagetag.Image, *registry.Client, error) {
	if repo := cmd.String("repository"); repo != "" {
		if cmd.Args().Len() > 0 {
			return nil, nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				"references cannot be combined with --repository")
		}

		client, err := registry.Open(registry.ListOptions{
			Repository:  repo,
			PlainHTTP:   cmd.Bool("plain-http"),
			InsecureTLS: cmd.Bool("insecure-tls"),
		})
		if err != nil {
			return nil, nil, err
		}
		tags, err := client.Tags(ctx)
		if err != nil {
			return nil, nil, err
		}

		images, invalid, err := imagetag.FromTags(client.Repository().String(), tags)
		if err != nil {
			return nil, nil, err
		}
		if len(invalid) > 0 {
			slog.Warn("skipping invalid tags", "repository", repo, "tags", invalid)
		}
		return images, client, nil
	}

	refs := cmd.Args().Slice()
	if len(refs) == 0 {
		var err error
		refs, err = readLists[string](ctx, cmd, nil)
		if err != nil {
			return nil, nil, err
		}
	}
	images, err := imagetag.ParseAll(refs)
	return images, nil, err
}

// pinnedImage is a reference together with the manifest its tag resolved to.
type pinnedImage struct {
	Image     imagetag.Image `json:"image" yaml:"image"`
	Digest    digest.Digest  `json:"digest" yaml:"digest"`
	MediaType string         `json:"mediaType" yaml:"mediaType"`
}

// String returns the reference in name:tag@digest form.
func (p pinnedImage) String() string {
	return p.Image.String() + "@" + p.Digest.String()
}

// pinImages resolves the tag of every image concurrently over one registry
// client, keeping order.
func pinImages(ctx context.Context, client *registry.Client, images []imagetag.Image) ([]pinnedImage, error) {
	pinned := make([]pinnedImage, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.CLIMaxConcurrentReads)
	for i, img := range images {
		g.Go(func() error {
			desc, err := client.Resolve(gctx, img.Tag())
			if err != nil {
				return err
			}
			pinned[i] = pinnedImage{Image: img, Digest: desc.Digest, MediaType: desc.MediaType}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pinned, nil
}
