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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestBuildKubeClientPathResolution(t *testing.T) {
	tests := []struct {
		name          string
		kubeconfigArg string
		kubeconfigEnv string
	}{
		{name: "explicit invalid path", kubeconfigArg: "/nonexistent/path/to/kubeconfig"},
		{name: "env var with invalid path", kubeconfigEnv: "/nonexistent/env/kubeconfig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KUBECONFIG", tt.kubeconfigEnv)

			_, _, err := BuildKubeClient(tt.kubeconfigArg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "failed to build kube config") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildKubeClientInvalidFile(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "kubeconfig")
	if err := os.WriteFile(invalid, []byte("invalid yaml content"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ForKubeconfig(invalid); err == nil {
		t.Error("ForKubeconfig() with invalid config should return error")
	}
}

func TestBuildKubeClientValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	cfg := `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cs, rc, err := BuildKubeClient(path)
	if err != nil {
		t.Fatalf("BuildKubeClient() error = %v", err)
	}
	if cs == nil || rc == nil {
		t.Fatal("expected client and config")
	}
	if rc.UserAgent != userAgent {
		t.Errorf("UserAgent = %q, want %q", rc.UserAgent, userAgent)
	}
	if rc.Host != "https://127.0.0.1:6443" {
		t.Errorf("Host = %q", rc.Host)
	}
}

func TestGetKubeClientSingleton(t *testing.T) {
	reset := func() {
		clientOnce = sync.Once{}
		cachedClient = nil
		cachedConfig = nil
		clientErr = nil
	}
	reset()
	t.Cleanup(reset)

	c1, cfg1, err1 := GetKubeClient()
	c2, cfg2, err2 := GetKubeClient()

	// nolint:errorlint // identity check on the cached value
	if err1 != err2 {
		t.Errorf("GetKubeClient() returned different errors: %v, %v", err1, err2)
	}
	if c1 != c2 || cfg1 != cfg2 {
		t.Error("GetKubeClient() should return the cached client and config")
	}
	if err1 != nil && c1 != nil {
		t.Error("failed initialization should not return a non-nil client")
	}
}
