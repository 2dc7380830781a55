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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive; URL query strings are ignored.
func FormatFromPath(filePath string) Format {
	if f, ok := formatFromExt(filePath); ok {
		return f
	}
	slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
	return FormatJSON
}

// InputFormatFromPath picks the decoder for a document. Anything that is
// not recognizably JSON is read as YAML, which also accepts JSON.
func InputFormatFromPath(filePath string) Format {
	if f, ok := formatFromExt(filePath); ok && f == FormatJSON {
		return FormatJSON
	}
	return FormatYAML
}

func formatFromExt(filePath string) (Format, bool) {
	p := filePath
	if IsURL(filePath) {
		if u, err := url.Parse(filePath); err == nil {
			p = u.Path
		}
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".table", ".txt":
		return FormatTable, true
	default:
		return "", false
	}
}

// Reader handles deserialization of JSON or YAML from an io.Reader.
// Close must be called when the Reader was created by NewFileReader;
// it is safe to call more than once.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from input.
// If input implements io.Closer, Close closes it.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
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

// NewFileReader creates a Reader over a local file, an http(s) URL, or
// standard input when filePath is StdinPath. Remote documents are fetched
// with an HttpReader configured by opts and read fully into memory.
func NewFileReader(ctx context.Context, format Format, filePath string, opts ...HttpReaderOption) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	switch {
	case filePath == StdinPath:
		return &Reader{format: format, input: os.Stdin}, nil

	case IsURL(filePath):
		data, err := NewHttpReader(opts...).Read(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil

	default:
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return &Reader{format: format, input: file, closer: file}, nil
	}
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// Deserialize reads data from the input source and unmarshals it into v,
// which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader. Safe to call on a nil
// Reader and more than once.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil // Prevent double-close
		return err
	}
	return nil
}

// LoadDocument reads the untyped document at filePath (local path, URL or
// StdinPath). An empty document decodes to nil rather than an error.
// opts apply to remote documents.
func LoadDocument(ctx context.Context, filePath string, opts ...HttpReaderOption) (any, error) {
	format := InputFormatFromPath(filePath)

	r, err := NewFileReader(ctx, format, filePath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", filePath, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr, "path", filePath)
		}
	}()

	var doc any
	if err := r.Deserialize(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			slog.Debug("empty document", "path", filePath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse %q: %w", filePath, err)
	}

	slog.Debug("loaded document", "path", filePath, "format", format)
	return doc, nil
}

// FromFile loads and deserializes the document at path into a new T.
// The format is picked with InputFormatFromPath.
func FromFile[T any](ctx context.Context, path string, opts ...HttpReaderOption) (*T, error) {
	r, err := NewFileReader(ctx, InputFormatFromPath(path), path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	return &v, nil
}
