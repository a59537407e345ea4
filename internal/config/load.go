// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"sync"
)

// Load validates env against the fixed schema and assembles a [*Config].
// World paths are resolved against rootDir, which should be absolute.
//
// Variables are resolved in a fixed order because later values depend on
// earlier ones (the default public URLs embed the port). Every invalid
// variable is reported in the returned error; on error the *Config is nil.
func Load(env Environment, rootDir string) (*Config, error) {
	return newConfigBuilder(env, rootDir).
		withWorld().
		withPort().
		withSaveInterval().
		withJWTSecret().
		withPublicURLs().
		withMaxUploadSize().
		withAdminCode().
		withCommitHash().
		withLiveKit().
		withPublicEnv().
		build()
}

var (
	loadOnce  sync.Once
	loaded    *Config
	loadErr   error
	bootstrap Bootstrap
)

// Get returns the process-wide configuration, building it on first use from
// the process environment merged over the optional env file.
//
// The configuration is built exactly once; every later call returns the same
// pointer, or the same error if the first build failed. There is no reload.
func Get() (*Config, error) {
	loadOnce.Do(func() {
		loaded, loadErr = loadProcessConfig()
	})

	return loaded, loadErr
}

// GetBootstrap returns the bootstrap settings used by [Get]. It triggers the
// build if it has not happened yet.
func GetBootstrap() Bootstrap {
	_, _ = Get()
	return bootstrap
}

func loadProcessConfig() (*Config, error) {
	process := ProcessEnvironment()

	b, err := ParseBootstrap(process)
	if err != nil {
		return nil, err
	}
	bootstrap = b

	merged, err := MergeEnvFile(process, b.EnvFile)
	if err != nil {
		return nil, err
	}

	rootDir, err := resolveRootDir(b.RootDir)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(merged, rootDir)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	return cfg, nil
}
