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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/semtag/pkg/defaults"
)

const (
	// EnvPort overrides Config.Port.
	EnvPort = "PORT"
	// EnvShutdownTimeout overrides Config.ShutdownTimeout, in seconds.
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"

	defaultMaxBodyBytes = 1 << 20
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are mounted behind the middleware chain, keyed by pattern.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// MaxBodyBytes bounds request bodies read by handlers.
	MaxBodyBytes int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns the defaults with environment overrides applied.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:            "server",
		Version:         "undefined",
		Port:            8080,
		RateLimit:       100,
		RateLimitBurst:  200,
		MaxBodyBytes:    defaultMaxBodyBytes,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}

	if s := os.Getenv(EnvPort); s != "" {
		if port, err := strconv.Atoi(s); err == nil && port > 0 && port <= 65535 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid port", "env", EnvPort, "value", s)
		}
	}

	// match the pod termination grace period
	if s := os.Getenv(EnvShutdownTimeout); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			cfg.ShutdownTimeout = time.Duration(secs) * time.Second
		} else {
			slog.Warn("ignoring invalid shutdown timeout", "env", EnvShutdownTimeout, "value", s)
		}
	}

	return cfg
}

// Option configures a Server.
type Option func(*Config)

func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

func WithVersion(version string) Option {
	return func(c *Config) { c.Version = version }
}

// WithHandler adds routes served behind the middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(c *Config) {
		if c.Handlers == nil {
			c.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			c.Handlers[pattern] = h
		}
	}
}

func WithAddress(addr string) Option {
	return func(c *Config) { c.Address = addr }
}

// WithPort sets the listen port; 0 picks a free port.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Config) {
		c.RateLimit = limit
		c.RateLimitBurst = burst
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) { c.ShutdownTimeout = d }
}
