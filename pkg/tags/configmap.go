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

package tags

import (
	"context"
	"fmt"
	"strings"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/k8s/client"
	"github.com/NVIDIA/semtag/pkg/serializer"
)

// ConfigMapTagsKey is the data key holding newline-separated tags.
const ConfigMapTagsKey = "tags"

// ConfigMapSource reads tags from a ConfigMap, one per line. Blank lines and
// lines starting with '#' are ignored.
type ConfigMapSource struct {
	Namespace  string
	Name       string
	client     client.Interface
	kubeconfig string
}

// NewConfigMapSource parses uri ("cm://namespace/name"). A nil client is
// resolved from kubeconfig on first use.
func NewConfigMapSource(uri string, c client.Interface, kubeconfig string) (*ConfigMapSource, error) {
	ns, name, err := serializer.ParseConfigMapURI(uri)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid ConfigMap source", err)
	}
	return &ConfigMapSource{Namespace: ns, Name: name, client: c, kubeconfig: kubeconfig}, nil
}

func (s *ConfigMapSource) Tags(ctx context.Context) ([]string, error) {
	if s.client == nil {
		c, err := client.ForKubeconfig(s.kubeconfig)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
		s.client = c
	}

	cm, err := s.client.CoreV1().ConfigMaps(s.Namespace).Get(ctx, s.Name, metav1.GetOptions{})
	if err != nil {
		switch {
		case k8serrors.IsNotFound(err):
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, fmt.Sprintf("ConfigMap %s/%s not found", s.Namespace, s.Name), err)
		case k8serrors.IsUnauthorized(err), k8serrors.IsForbidden(err):
			return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, fmt.Sprintf("access to ConfigMap %s/%s denied", s.Namespace, s.Name), err)
		default:
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, fmt.Sprintf("failed to get ConfigMap %s/%s", s.Namespace, s.Name), err)
		}
	}

	return parseTagLines(cm.Data[ConfigMapTagsKey]), nil
}

func (s *ConfigMapSource) String() string {
	return ConfigMapScheme + s.Namespace + "/" + s.Name
}

func parseTagLines(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
