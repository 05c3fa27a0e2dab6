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

package api

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semtag_version_requests_total",
			Help: "Version requests by operation and result code",
		},
		[]string{"operation", "result"},
	)

	sourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semtag_tag_source_fetch_duration_seconds",
			Help:    "Time spent listing tags from a source, cache hits included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scheme"},
	)
)

func schemeOf(uri string) string {
	if scheme, _, ok := strings.Cut(uri, "://"); ok {
		return scheme
	}
	return "git"
}
