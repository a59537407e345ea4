// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package world prepares the on-disk layout of the configured world.
package world

import (
	"fmt"
	"os"

	"github.com/MKhiriev/world-server/internal/config"
	"github.com/MKhiriev/world-server/internal/logger"
)

const dirPermissions = 0o755

// Prepare creates the world, assets and collections directories if they do
// not exist yet. Existing directories and their contents are left untouched.
func Prepare(cfg config.World, log *logger.Logger) error {
	for _, dir := range []string{cfg.Dir(), cfg.AssetsDir(), cfg.CollectionsDir()} {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("error creating world directory %s: %w", dir, err)
		}
	}

	log.Info().Str("world", cfg.Name()).Str("dir", cfg.Dir()).Msg("world directories ready")
	return nil
}
