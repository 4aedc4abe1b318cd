/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/serializer"
	"github.com/nikstur/uapi-version/pkg/server"
	"github.com/nikstur/uapi-version/pkg/version"
)

// runCLI runs the root command with stdin as input and returns what it wrote.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	cmd.Reader = strings.NewReader(stdin)
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	return exitErr.ExitCode()
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid text format", format: "text", wantFormat: serializer.FormatText},
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "valid table format", format: "table", wantFormat: serializer.FormatTable},
		{name: "case insensitive", format: "JSON", wantFormat: serializer.FormatJSON},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if tt.wantErr {
						assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
					} else if got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestRootCmd_CommandStructure(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Usage, "command %s has no usage", c.Name)
		assert.NotNil(t, c.Action, "command %s has no action", c.Name)
	}
	assert.Equal(t, []string{"compare", "sort", "latest", "tags", "serve"}, names)

	for _, flagName := range []string{"log-level", "format", "t", "output", "o"} {
		found := false
		for _, f := range root.Flags {
			if hasName(f, flagName) {
				found = true
				break
			}
		}
		assert.True(t, found, "root flag %s not found", flagName)
	}
}

func TestRootCmd_VersionString(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, appVersion)
	assert.Contains(t, out, "commit "+commit)

	// Build metadata and the version package coexist in this package.
	assert.Equal(t, version.Less, version.Strverscmp(appVersion, appVersion+".1"))
}

func hasName(flag cli.Flag, name string) bool {
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"1.0~rc1", "1.0", "1.0~rc1 < 1.0\n"},
		{"1.0", "1.00", "1.0 = 1.00\n"},
		{"225.1", "2", "225.1 > 2\n"},
		{"abc-5", "1.0.0~rc1", "abc-5 < 1.0.0~rc1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			out, err := runCLI(t, "", "compare", tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCompare_JSON(t *testing.T) {
	out, err := runCLI(t, "", "compare", "--format", "json", "1.0^git1", "1.0")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1.0^git1","b":"1.0","result":">"}`, out)
}

func TestCompare_FormatFromEnv(t *testing.T) {
	t.Setenv(EnvFormat, "yaml")
	out, err := runCLI(t, "", "compare", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "a: \"1\"\nb: \"2\"\nresult: <\n", out)
}

func TestCompare_Operators(t *testing.T) {
	tests := []struct {
		a, op, b string
		holds    bool
	}{
		{"1.0", "lt", "1.1", true},
		{"1.0", "<", "1.1", true},
		{"1.1", "lt", "1.0", false},
		{"1.0", "le", "1.00", true},
		{"1.0", "eq", "01.0", true},
		{"1.0", "==", "1.0.0", false},
		{"1.0", "ne", "1.0~rc1", true},
		{"256.1", "ge", "256~rc3", true},
		{"1.0~rc1", "GT", "1.0", false},
		{"1.0^git1", ">", "1.0", true},
		{"2", "!=", "2", false},
		{"2", ">=", "3", false},
		{"2", "<=", "3", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+" "+tt.op+" "+tt.b, func(t *testing.T) {
			out, err := runCLI(t, "", "compare", tt.a, tt.op, tt.b)
			assert.Empty(t, out)
			if tt.holds {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, exitError, exitCode(t, err))
		})
	}
}

func TestCompare_InvalidUsage(t *testing.T) {
	_, err := runCLI(t, "", "compare", "1", "about", "2")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	_, err = runCLI(t, "", "compare", "1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestSort_Stdin(t *testing.T) {
	out, err := runCLI(t, "5.2\nabc-5\n# comment\n\n1.0.0~rc1\n", "sort")
	require.NoError(t, err)
	assert.Equal(t, "abc-5\n1.0.0~rc1\n5.2\n", out)
}

func TestSort_ReverseUnique(t *testing.T) {
	out, err := runCLI(t, "1.0\n2.0\n1.00\n2.0~rc1\n", "sort", "--reverse", "--unique")
	require.NoError(t, err)
	assert.Equal(t, "2.0\n2.0~rc1\n1.0\n", out)
}

func TestSort_Files(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "a.json", `["1.10", "1.2"]`)
	yamlPath := writeFile(t, dir, "b.yaml", "- 1.9\n- 1.10~rc1\n")
	textPath := writeFile(t, dir, "c", "1.1\n")

	out, err := runCLI(t, "", "sort", jsonPath, yamlPath, textPath)
	require.NoError(t, err)
	assert.Equal(t, "1.1\n1.2\n1.9\n1.10~rc1\n1.10\n", out)
}

func TestSort_MixedStdinAndFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "list.txt", "3\n")
	out, err := runCLI(t, "2\n1\n", "sort", path, "-")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)

	_, err = runCLI(t, "", "sort", "-", "-")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestSort_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("- 256.4\n- 255\n"))
	}))
	defer server.Close()

	out, err := runCLI(t, "", "sort", server.URL+"/releases.yaml")
	require.NoError(t, err)
	assert.Equal(t, "255\n256.4\n", out)
}

func TestSort_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "", "sort", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))

	bad := writeFile(t, dir, "bad.json", `{"not": "a list"}`)
	_, err = runCLI(t, "", "sort", bad)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	_, err = runCLI(t, "1\n", "sort", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestSort_Check(t *testing.T) {
	out, err := runCLI(t, "1.0~rc1\n1.0\n1.0^git1\n", "sort", "--check")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = runCLI(t, "1.0\n1.0~rc1\n", "sort", "--check")
	require.Error(t, err)
	assert.Equal(t, exitError, exitCode(t, err))

	_, err = runCLI(t, "2\n1\n", "sort", "--check", "--reverse")
	assert.NoError(t, err)
}

func TestSort_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorted.json")
	out, err := runCLI(t, "10\n9\n", "sort", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"9", "10"}, got)
}

func TestSort_Table(t *testing.T) {
	out, err := runCLI(t, "2\n1\n", "sort", "--format", "table")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^\[0\]\s+1$`, out)
	assert.Regexp(t, `(?m)^\[1\]\s+2$`, out)
}

func TestLatest(t *testing.T) {
	input := "1.0\n1.0^git5\n1.1~rc1\n0.9\n"

	out, err := runCLI(t, input, "latest")
	require.NoError(t, err)
	assert.Equal(t, "1.1~rc1\n", out)

	out, err = runCLI(t, input, "latest", "--oldest")
	require.NoError(t, err)
	assert.Equal(t, "0.9\n", out)

	_, err = runCLI(t, "# nothing\n", "latest")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestTags(t *testing.T) {
	out, err := runCLI(t, "", "tags", "app:v1.10", "app:v1.9", "app:1.10.1", "app:latest")
	require.NoError(t, err)
	assert.Equal(t, "app:latest\napp:v1.9\napp:v1.10\napp:1.10.1\n", out)

	out, err = runCLI(t, "", "tags", "--latest", "app:v1.10", "app:v1.9")
	require.NoError(t, err)
	assert.Equal(t, "app:v1.10\n", out)

	out, err = runCLI(t, "ghcr.io/org/app:2\nghcr.io/org/app:10\n", "tags", "--reverse")
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/org/app:10\nghcr.io/org/app:2\n", out)

	_, err = runCLI(t, "", "tags", "app")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func testManifest(tag string) string {
	return `{"schemaVersion":2,"annotations":{"org.opencontainers.image.version":"` + tag + `"}}`
}

func newTagServer(t *testing.T) string {
	t.Helper()
	t.Setenv("DOCKER_CONFIG", t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tag, ok := strings.CutPrefix(r.URL.Path, "/v2/org/app/manifests/"); ok {
			manifest := testManifest(tag)
			w.Header().Set("Content-Type", ocispec.MediaTypeImageManifest)
			w.Header().Set("Content-Length", strconv.Itoa(len(manifest)))
			w.Header().Set("Docker-Content-Digest", digest.FromString(manifest).String())
			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte(manifest))
			}
			return
		}
		if r.URL.Path != "/v2/org/app/tags/list" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"org/app","tags":["1.10","1.9","latest","1.10-1"]}`))
	}))
	t.Cleanup(server.Close)
	return strings.TrimPrefix(server.URL, "http://")
}

func TestTags_Repository(t *testing.T) {
	host := newTagServer(t)

	out, err := runCLI(t, "", "tags", "--plain-http", "--repository", host+"/org/app")
	require.NoError(t, err)
	want := strings.Join([]string{
		host + "/org/app:latest",
		host + "/org/app:1.9",
		host + "/org/app:1.10",
		host + "/org/app:1.10-1",
	}, "\n") + "\n"
	assert.Equal(t, want, out)

	out, err = runCLI(t, "", "tags", "--plain-http", "--latest", "--repository", "oci://"+host+"/org/app")
	require.NoError(t, err)
	assert.Equal(t, host+"/org/app:1.10-1\n", out)

	_, err = runCLI(t, "", "tags", "--plain-http", "--repository", host+"/org/app", "app:1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestTags_Digest(t *testing.T) {
	host := newTagServer(t)
	pin := func(tag string) string {
		return host + "/org/app:" + tag + "@" + digest.FromString(testManifest(tag)).String()
	}

	out, err := runCLI(t, "", "tags", "--plain-http", "--digest", "--latest", "--repository", host+"/org/app")
	require.NoError(t, err)
	assert.Equal(t, pin("1.10-1")+"\n", out)

	out, err = runCLI(t, "", "tags", "--plain-http", "--digest", "--reverse", "--repository", host+"/org/app")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{pin("1.10-1"), pin("1.10"), pin("1.9"), pin("latest")}, "\n")+"\n", out)

	out, err = runCLI(t, "", "--format", "json", "tags", "--plain-http", "--digest", "--latest", "--repository", host+"/org/app")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, host+"/org/app:1.10-1", got["image"])
	assert.Equal(t, digest.FromString(testManifest("1.10-1")).String(), got["digest"])
	assert.Equal(t, ocispec.MediaTypeImageManifest, got["mediaType"])

	_, err = runCLI(t, "", "tags", "--digest", "app:1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

// unreadReader fails the test when anything reads from it.
type unreadReader struct{ t *testing.T }

func (r unreadReader) Read([]byte) (int, error) {
	r.t.Error("standard input was read")
	return 0, io.ErrUnexpectedEOF
}

func TestTags_DigestWithoutRepositoryLeavesStdinUnread(t *testing.T) {
	cmd := newRootCmd()
	cmd.Writer = io.Discard
	cmd.ErrWriter = io.Discard
	cmd.Reader = unreadReader{t: t}

	err := cmd.Run(context.Background(), []string{name, "tags", "--digest"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "--digest requires --repository")
}

func TestRun_ExitCodes(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{name, "compare", "1", "lt", "2"}, &stderr))
	assert.Equal(t, exitError, run(context.Background(), []string{name, "compare", "2", "lt", "1"}, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, exitError, run(context.Background(), []string{name, "compare", "1"}, &stderr))
	assert.Contains(t, stderr.String(), string(apperrors.ErrCodeInvalidRequest))

	host := newTagServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stderr.Reset()
	assert.Equal(t, exitCanceled, run(ctx, []string{name, "tags", "--plain-http", "--repository", host + "/org/app"}, &stderr))
	assert.Contains(t, stderr.String(), string(apperrors.ErrCodeCanceled))
}

func TestServe_Config(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	var cfgs []*server.Config
	capture := func(args ...string) {
		cmd := serveCmd()
		cmd.Action = func(_ context.Context, c *cli.Command) error {
			cfgs = append(cfgs, serverConfig(c))
			return nil
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"serve"}, args...)))
	}

	capture()
	capture("--address", "127.0.0.1", "-p", "9000", "--rate-limit", "2.5", "--rate-burst", "3",
		"--max-versions", "50", "--shutdown-timeout", "5s")
	require.Len(t, cfgs, 2)

	def := server.NewConfig()
	assert.Equal(t, ":8080", cfgs[0].Addr())
	assert.Equal(t, def.RateLimit, cfgs[0].RateLimit)
	assert.Equal(t, def.MaxVersions, cfgs[0].MaxVersions)
	assert.Equal(t, def.ShutdownTimeout, cfgs[0].ShutdownTimeout)

	assert.Equal(t, "127.0.0.1:9000", cfgs[1].Addr())
	assert.Equal(t, rate.Limit(2.5), cfgs[1].RateLimit)
	assert.Equal(t, 3, cfgs[1].RateLimitBurst)
	assert.Equal(t, 50, cfgs[1].MaxVersions)
	assert.Equal(t, 5*time.Second, cfgs[1].ShutdownTimeout)
}

func TestServe_StopsOnCanceledContext(t *testing.T) {
	t.Setenv("PORT", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	assert.Equal(t, 0, run(ctx, []string{name, "serve", "--address", "127.0.0.1", "--port", "0"}, &stderr))
}
