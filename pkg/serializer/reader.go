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

package serializer

import (
	"bufio"
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/nikstur/uapi-version/pkg/defaults"
	"gopkg.in/yaml.v3"
)

// commentPrefix marks lines ignored by the text format.
const commentPrefix = "#"

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// FormatFromPath determines the input format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - anything else → FormatText
//
// Extension matching is case-insensitive. URL query strings are ignored.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	if i := strings.IndexAny(lowerPath, "?#"); i >= 0 && IsURL(lowerPath) {
		lowerPath = lowerPath[:i]
	}
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	default:
		return FormatText
	}
}

// Reader handles deserialization of version lists from various formats
// (text, JSON, YAML). It supports reading from any io.Reader source
// including files, strings, and HTTP responses.
//
// Resource Management:
//   - Close must be called to release resources when using NewFileReader
//   - Safe to call Close multiple times (idempotent)
//
// Table format is write-only.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from an io.Reader source.
//
// If input implements io.Closer, it will be closed by Reader.Close().
// Pass io.NopCloser(os.Stdin) to keep a shared source open.
//
// Example:
//
//	reader, err := NewReader(FormatText, strings.NewReader("1.0\n2.0~rc1\n"))
//	if err != nil { return err }
//	var list []string
//	err = reader.Deserialize(&list)
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}

	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}

	return r, nil
}

// ReaderOption configures NewFileReader.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	http *HttpReader
}

// WithHttpReader fetches URLs with h instead of a new default HttpReader.
// Sharing one HttpReader paces concurrent downloads together.
func WithHttpReader(h *HttpReader) ReaderOption {
	return func(c *readerConfig) {
		if h != nil {
			c.http = h
		}
	}
}

// NewFileReader creates a new Reader that reads from a file path or URL.
// Local and remote content is bounded by defaults.MaxInputBytes; larger
// inputs fail instead of being truncated.
//
// Example:
//
//	reader, err := NewFileReader(ctx, FormatYAML, "releases.yaml")
//	if err != nil { return err }
//	defer reader.Close()
func NewFileReader(ctx context.Context, format Format, filePath string, opts ...ReaderOption) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	if IsURL(filePath) {
		cfg := readerConfig{}
		for _, opt := range opts {
			opt(&cfg)
		}
		if cfg.http == nil {
			cfg.http = NewHttpReader()
		}
		data, err := cfg.http.ReadWithContext(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch remote file: %w", err)
		}
		return &Reader{
			format: format,
			input:  bytes.NewReader(data),
		}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		format: format,
		input:  &cappedReader{r: file, remaining: defaults.MaxInputBytes, path: filePath},
		closer: file,
	}, nil
}

// cappedReader fails with ErrInputTooLarge once more than remaining bytes
// are read, instead of reporting EOF as io.LimitReader does.
type cappedReader struct {
	r         io.Reader
	remaining int64
	path      string
}

// ErrInputTooLarge is returned when an input exceeds defaults.MaxInputBytes.
var ErrInputTooLarge = errors.New("input too large")

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, fmt.Errorf("%s exceeds %d bytes: %w", c.path, defaults.MaxInputBytes, ErrInputTooLarge)
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return 0, fmt.Errorf("%s exceeds %d bytes: %w", c.path, defaults.MaxInputBytes, ErrInputTooLarge)
	}
	return n, err
}

// NewFileReaderAuto creates a new Reader with the format detected from the
// file extension using FormatFromPath.
func NewFileReaderAuto(ctx context.Context, filePath string, opts ...ReaderOption) (*Reader, error) {
	return NewFileReader(ctx, FormatFromPath(filePath), filePath, opts...)
}

// Deserialize reads data from the input source and unmarshals it into v.
//
// For JSON and YAML v may be any pointer accepted by the respective decoder.
// For text v must be a *[]string or a pointer to a slice whose element
// pointer implements encoding.TextUnmarshaler, such as *[]version.Version.
// Blank lines and lines starting with '#' are skipped and surrounding
// whitespace is trimmed.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatText:
		return r.deserializeText(v)

	case FormatJSON:
		decoder := json.NewDecoder(r.input)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		decoder := yaml.NewDecoder(r.input)
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

func (r *Reader) deserializeText(v any) error {
	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("text format requires a pointer to a slice, got %T", v)
	}

	slice := ptr.Elem()
	elemType := slice.Type().Elem()
	isString := elemType.Kind() == reflect.String
	if !isString && !reflect.PointerTo(elemType).Implements(textUnmarshalerType) {
		return fmt.Errorf("text format cannot decode into %s", elemType)
	}

	lines, err := readLines(r.input)
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(slice.Type(), 0, len(lines))
	for i, line := range lines {
		elem := reflect.New(elemType)
		if isString {
			elem.Elem().SetString(line)
		} else if err := elem.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(line)); err != nil {
			return fmt.Errorf("failed to decode line %d: %w", i+1, err)
		}
		out = reflect.Append(out, elem.Elem())
	}

	slice.Set(out)
	slog.Debug("decoded text input", "items", len(lines))
	return nil
}

func readLines(input io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), defaults.MaxInputBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return lines, nil
}

// Close releases any resources held by the Reader.
// Safe to call on a nil Reader and safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// FromFile reads and deserializes data from a file path or URL into type T.
// The format is detected from the extension.
//
// Example:
//
//	list, err := FromFile[[]version.Version](ctx, "releases.txt")
func FromFile[T any](ctx context.Context, path string, opts ...ReaderOption) (*T, error) {
	fileFormat := FormatFromPath(path)
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(fileFormat)),
	)

	ser, err := NewFileReader(ctx, fileFormat, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}

	defer func() {
		if closeErr := ser.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var r T
	if err := ser.Deserialize(&r); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}

	slog.Debug("successfully loaded object from file",
		slog.String("path", path),
	)

	return &r, nil
}
