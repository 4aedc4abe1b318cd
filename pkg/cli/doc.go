// Package cli implements the command-line interface for uapi-version.
//
// # Commands
//
// compare - Compare two versions:
//
//	uapi-version compare 1.0~rc1 1.0
//	uapi-version compare 256.1 ge 256~rc3
//
// With two arguments the relation is printed. With an operator (lt, le, eq,
// ne, ge, gt or their symbols) nothing is printed and the exit code tells
// whether the relation holds.
//
// sort - Sort versions oldest first:
//
//	uapi-version sort releases.txt
//	git tag | uapi-version sort --reverse --unique
//	uapi-version sort --check releases.yaml
//
// latest - Print the newest (or with --oldest the oldest) version:
//
//	uapi-version latest https://example.com/releases.json
//
// tags - Order container image references by tag:
//
//	uapi-version tags nginx:1.25 nginx:1.9
//	uapi-version tags --repository ghcr.io/org/app --latest
//
// serve - Run the HTTP API until interrupted:
//
//	uapi-version serve --port 8080 --rate-limit 50
//
// # Inputs
//
// sort and latest read files, http(s) URLs or "-" for standard input, which
// is also the default. Inputs are loaded concurrently and concatenated in
// argument order. The format follows the extension:
//   - .json: JSON array of strings
//   - .yaml, .yml: YAML sequence
//   - anything else: one version per line, blank lines and # comments ignored
//
// # Global Flags
//
//	--output, -o     Output file path (default: stdout)
//	--format, -t     Output format: text, json, yaml, table (default: text)
//	--log-level      Log level: debug, info, warn, error (default: info)
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Environment Variables
//
//	LOG_LEVEL            Set logging verbosity (debug, info, warn, error)
//	UAPI_VERSION_FORMAT  Default output format
//	DOCKER_CONFIG        Directory of the Docker configuration used for registry credentials
//	PORT                 Port for serve (default: 8080)
//	SHUTDOWN_TIMEOUT     Graceful shutdown timeout for serve, e.g. 45s
//
// # Exit Codes
//
//	0  Success, or the tested relation holds
//	1  General error, the tested relation does not hold, or input not sorted with --check
//	2  Context canceled
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/version - Version ordering
//   - pkg/imagetag - Image reference ordering
//   - pkg/registry - Registry tag listing
//   - pkg/server - HTTP API
//   - pkg/serializer - Input decoding and output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/nikstur/uapi-version/pkg/cli.appVersion=1.0.0'"
package cli
