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
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/semtag/pkg/defaults"
	"github.com/NVIDIA/semtag/pkg/k8s/client"
)

const (
	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	fieldManager          = "semtag"
)

// ConfigMapDataProvider lets a serialized value contribute extra top-level
// data keys, such as the plain tag, next to the encoded document.
type ConfigMapDataProvider interface {
	ConfigMapData() map[string]string
}

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap with
// Server-Side Apply, creating or updating it atomically.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
	now       func() time.Time
}

// NewConfigMapWriter creates a writer for namespace/name. A nil client is
// resolved with client.GetKubeClient on first write.
func NewConfigMapWriter(namespace, name string, format Format, c client.Interface) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
		client:    c,
		now:       time.Now,
	}
}

// Serialize applies a ConfigMap holding:
//   - result.{json|yaml|txt}: the encoded value
//   - format: the format used
//   - timestamp: RFC 3339 write time
//   - any keys from ConfigMapDataProvider
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	if w.client == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		w.client = c
	}

	content, err := encode(w.format, v)
	if err != nil {
		return err
	}

	data := map[string]string{}
	if p, ok := v.(ConfigMapDataProvider); ok {
		maps.Copy(data, p.ConfigMapData())
	}
	data[resultKey(w.format)] = string(content)
	data[configMapFormatKey] = string(w.format)
	data[configMapTimestampKey] = w.now().UTC().Format(time.RFC3339)

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "semtag",
			"app.kubernetes.io/managed-by": fieldManager,
		}).
		WithData(data)

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format)

	_, err = w.client.CoreV1().ConfigMaps(w.namespace).Apply(ctx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func resultKey(format Format) string {
	ext := string(format)
	if format == FormatTable {
		ext = "txt"
	}
	return "result." + ext
}

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	namespace, name, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	switch {
	case namespace == "":
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	case name == "":
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	case strings.Contains(name, "/"):
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot contain '/'")
	}
	return namespace, name, nil
}
