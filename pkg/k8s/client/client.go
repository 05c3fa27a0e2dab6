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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/NVIDIA/semtag/pkg/defaults"
)

// Interface is an alias for kubernetes.Interface so tests can pass
// fake.NewSimpleClientset().
type Interface = kubernetes.Interface

// userAgent identifies semtag requests in API server audit logs.
const userAgent = "semtag"

var (
	clientOnce   sync.Once
	cachedClient Interface
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client built with automatic kubeconfig
// discovery (KUBECONFIG, ~/.kube/config, then in-cluster). The first result,
// including an error, is cached.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		var cs *kubernetes.Clientset
		cs, cachedConfig, clientErr = BuildKubeClient("")
		if clientErr == nil {
			cachedClient = cs
		}
	})
	return cachedClient, cachedConfig, clientErr
}

// ForKubeconfig returns the shared client for an empty path, or a fresh
// client for an explicit kubeconfig.
func ForKubeconfig(kubeconfig string) (Interface, error) {
	if kubeconfig == "" {
		c, _, err := GetKubeClient()
		return c, err
	}
	c, _, err := BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuildKubeClient creates a client from kubeconfig, bypassing the shared
// instance. An empty path uses automatic discovery.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := restConfig(resolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, nil, err
	}

	config.UserAgent = userAgent
	config.Timeout = defaults.K8sAPITimeout

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, config, nil
}

func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	p := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	// InClusterConfig directly avoids the "Neither --kubeconfig nor --master"
	// warning from clientcmd.
	if kubeconfig == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
		return config, nil
	}
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
	}
	return config, nil
}
