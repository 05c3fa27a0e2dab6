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
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/NVIDIA/semtag/pkg/config"
	"github.com/NVIDIA/semtag/pkg/logging"
	"github.com/NVIDIA/semtag/pkg/server"
)

const (
	name           = "semtagd"
	versionDefault = "dev"

	// EnvConfig names an explicit config file for the daemon.
	EnvConfig = config.EnvPrefix + "_CONFIG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/semtag/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve runs the semtagd HTTP API until SIGINT or SIGTERM.
func Serve() error {
	ctx := context.Background()

	cfg, err := config.Load(afero.NewOsFs(), os.Getenv(EnvConfig))
	if err != nil {
		logging.SetDefaultStructuredLogger(name, version)
		slog.Error("failed to load configuration", "error", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"config", cfg.File,
		"sources", cfg.Sources,
	)

	s := server.New(serverOptions(cfg)...)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// serverOptions wires the handlers and applies the configured port unless
// PORT is set.
func serverOptions(cfg *config.Config) []server.Option {
	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(NewHandler(*cfg).Routes()),
	}
	if os.Getenv(server.EnvPort) == "" {
		opts = append(opts, server.WithPort(cfg.Server.Port))
	}
	return opts
}
