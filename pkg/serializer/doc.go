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

// Package serializer reads version lists and writes command results in
// multiple formats.
//
// # Formats
//
// Text:
//   - One item per line
//   - Input skips blank lines and lines starting with '#'
//   - Default for files without a recognized extension
//
// JSON:
//   - Input is an array of strings
//   - Output is indented with two spaces
//
// YAML:
//   - Input is a sequence of scalars
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened FIELD/VALUE listing for terminals
//   - Write-only
//
// Values implementing encoding.TextMarshaler, such as version.Version,
// encode as plain strings in every format.
//
// # Usage - Encoding
//
//	writer, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//	    return err
//	}
//	defer writer.Close()
//	if err := writer.Serialize(ctx, versions); err != nil {
//	    return err
//	}
//
// # Usage - Decoding
//
//	list, err := serializer.FromFile[[]version.Version](ctx, "releases.yaml")
//
// Paths starting with http:// or https:// are fetched with HttpReader,
// which applies the timeouts from the defaults package and caps the body at
// defaults.MaxInputBytes.
package serializer
