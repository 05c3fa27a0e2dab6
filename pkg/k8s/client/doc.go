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

// Package client builds Kubernetes clients for ConfigMap tag sources and
// result writers.
//
// GetKubeClient shares one client per process, discovered from KUBECONFIG,
// ~/.kube/config or the in-cluster service account:
//
//	cs, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := cs.CoreV1().ConfigMaps("release").Get(ctx, "tags", metav1.GetOptions{})
//
// ForKubeconfig honors an explicit --kubeconfig flag and falls back to the
// shared client when the path is empty.
package client
