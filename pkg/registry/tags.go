// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/errdef"
	orasregistry "oras.land/oras-go/v2/registry"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/errcode"

	"github.com/nikstur/uapi-version/pkg/defaults"
	apperrors "github.com/nikstur/uapi-version/pkg/errors"
)

// URIScheme is an optional prefix for repository arguments (e.g., "oci://ghcr.io/org/app").
const URIScheme = "oci://"

const (
	dockerHubDomain   = "docker.io"
	dockerHubRegistry = "registry-1.docker.io"
)

// ListOptions selects a repository and how to connect to it.
type ListOptions struct {
	// Repository is the repository to list, with or without registry host.
	// Tags and digests are ignored.
	Repository string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Client overrides the HTTP client. Credentials are not loaded when set.
	Client remote.Client
}

// Repository is a normalized repository reference.
type Repository struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Path is the repository path within the registry (e.g., "org/app").
	Path string
}

// String returns "registry/path".
func (r Repository) String() string {
	return r.Registry + "/" + r.Path
}

// ParseRepository normalizes a repository reference. Familiar Docker Hub
// names such as "nginx" resolve to "docker.io/library/nginx".
func ParseRepository(s string) (Repository, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), URIScheme)
	named, err := reference.ParseNormalizedNamed(trimmed)
	if err != nil {
		return Repository{}, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid repository", err, map[string]any{"repository": s})
	}

	return Repository{
		Registry: reference.Domain(named),
		Path:     reference.Path(named),
	}, nil
}

// Client talks to a single repository. It is built once per repository so
// that every call shares the same HTTP transport and token cache, and it is
// safe for concurrent use.
type Client struct {
	repo *remote.Repository
	ref  Repository
}

// Open parses opts.Repository and returns a Client for it. No request is
// sent until a method is called.
func Open(opts ListOptions) (*Client, error) {
	repoRef, err := ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	host := repoRef.Registry
	if host == dockerHubDomain {
		host = dockerHubRegistry
	}

	repo, err := remote.NewRepository(host + "/" + repoRef.Path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid repository", err, map[string]any{"repository": opts.Repository})
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = opts.Client
	if repo.Client == nil {
		repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)
	}

	slog.Debug("opened repository", "repository", repoRef.String(), "plainHTTP", opts.PlainHTTP)
	return &Client{repo: repo, ref: repoRef}, nil
}

// Repository returns the normalized repository reference.
func (c *Client) Repository() Repository {
	return c.ref
}

// Tags returns every tag of the repository in registry order.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryTimeout)
	defer cancel()

	tags, err := orasregistry.Tags(ctx, c.repo)
	if err != nil {
		return nil, classify(err, c.ref, "tag listing")
	}

	slog.Debug("listed tags", "repository", c.ref.String(), "count", len(tags))
	return tags, nil
}

// Resolve returns the descriptor of the manifest that tag points to,
// without downloading the manifest.
func (c *Client) Resolve(ctx context.Context, tag string) (ocispec.Descriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryTimeout)
	defer cancel()

	desc, err := c.repo.Resolve(ctx, tag)
	if err != nil {
		return ocispec.Descriptor{}, classify(err, c.ref, "tag resolution")
	}

	slog.Debug("resolved tag",
		"repository", c.ref.String(),
		"tag", tag,
		"digest", desc.Digest.String(),
		"mediaType", desc.MediaType)
	return desc, nil
}

// ListTags opens the repository and returns every tag in registry order.
func ListTags(ctx context.Context, opts ListOptions) ([]string, error) {
	c, err := Open(opts)
	if err != nil {
		return nil, err
	}
	return c.Tags(ctx)
}

// Resolve opens the repository and resolves a single tag. Use Open and
// Client.Resolve when resolving several tags of the same repository.
func Resolve(ctx context.Context, opts ListOptions, tag string) (ocispec.Descriptor, error) {
	c, err := Open(opts)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	return c.Resolve(ctx, tag)
}

func classify(err error, repo Repository, op string) error {
	ctx := map[string]any{"repository": repo.String()}

	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.WrapWithContext(apperrors.ErrCodeCanceled, op+" canceled", err, ctx)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapWithContext(apperrors.ErrCodeTimeout, op+" timed out", err, ctx)
	case errors.Is(err, errdef.ErrNotFound):
		return apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "reference not found", err, ctx)
	}

	var respErr *errcode.ErrorResponse
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		return apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "repository not found", err, ctx)
	}

	return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
		fmt.Sprintf("%s failed for %s", op, repo), err, ctx)
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}

	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable, using anonymous access", "error", err)
		return client
	}
	client.Credential = credentials.Credential(credStore)
	return client
}
