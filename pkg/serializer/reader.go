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
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/semtag/pkg/k8s/client"
)

// FormatFromPath determines the format from the file extension, ignoring
// any URL query. Unknown extensions are JSON.
func FormatFromPath(filePath string) Format {
	p := strings.ToLower(filePath)
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		p = u.Path
	}
	switch path.Ext(p) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".table", ".txt":
		return FormatTable
	default:
		return FormatJSON
	}
}

// IsDocumentPath reports whether p names a JSON or YAML document.
func IsDocumentPath(p string) bool {
	switch path.Ext(strings.ToLower(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Reader decodes JSON or YAML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
}

// NewReader creates a Reader. The table format cannot be decoded.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}
	return &Reader{format: format, input: input}, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// FromLocation reads and decodes a document into T from a local path, an
// http(s) URL or a ConfigMap URI. The format comes from the extension;
// ConfigMaps carry their own format key.
func FromLocation[T any](ctx context.Context, location string, opts ...HttpReaderOption) (*T, error) {
	var (
		data   []byte
		format = FormatFromPath(location)
		err    error
	)

	switch {
	case strings.HasPrefix(location, ConfigMapURIScheme):
		data, format, err = readConfigMap(ctx, location)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = NewHttpReader(opts...).ReadWithContext(ctx, location)
	default:
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", location, err)
	}

	r, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", location, err)
	}

	slog.Debug("loaded document", "location", location, "format", format)
	return &out, nil
}

func readConfigMap(ctx context.Context, uri string) ([]byte, Format, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, "", err
	}
	c, _, err := client.GetKubeClient()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return readConfigMapWith(ctx, c, namespace, name)
}

func readConfigMapWith(ctx context.Context, c client.Interface, namespace, name string) ([]byte, Format, error) {
	cm, err := c.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f := Format(cm.Data[configMapFormatKey]); !f.IsUnknown() && f != FormatTable {
		format = f
	}
	if content, ok := cm.Data[resultKey(format)]; ok {
		return []byte(content), format, nil
	}
	for _, f := range []Format{FormatYAML, FormatJSON} {
		if content, ok := cm.Data[resultKey(f)]; ok {
			return []byte(content), f, nil
		}
	}
	return nil, "", fmt.Errorf("ConfigMap %s/%s has no result data", namespace, name)
}
