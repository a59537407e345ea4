// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment maps variable names to raw values. A missing key means the
// variable is absent. The loader never mutates an Environment it is given.
type Environment map[string]string

// Bootstrap holds the settings needed before the environment is validated:
// where to find the env file, the root directory and the log level. They are
// read from the process environment only.
type Bootstrap struct {
	// RootDir overrides the directory worlds are resolved against.
	// Env: ROOT_DIR. Defaults to the working directory.
	RootDir string `env:"ROOT_DIR"`

	// EnvFile is an optional dotenv file merged under the process
	// environment. Env: ENV_FILE.
	EnvFile string `env:"ENV_FILE" envDefault:".env"`

	// LogLevel is a zerolog level name. Env: LOG_LEVEL.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ProcessEnvironment snapshots the current process environment.
func ProcessEnvironment() Environment {
	return env.ToMap(os.Environ())
}

// ParseBootstrap reads the [Bootstrap] settings from process.
func ParseBootstrap(process Environment) (Bootstrap, error) {
	var b Bootstrap
	if err := env.ParseWithOptions(&b, env.Options{Environment: process}); err != nil {
		return Bootstrap{}, fmt.Errorf("error getting bootstrap env configs: %w", err)
	}

	return b, nil
}

// MergeEnvFile returns a new Environment with the variables of the dotenv
// file at path underneath process: a variable set in both keeps the process
// value. A missing file is not an error.
func MergeEnvFile(process Environment, path string) (Environment, error) {
	merged := Environment{}
	if path != "" {
		fileEnv, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", path, err)
		}
		for key, value := range fileEnv {
			merged[key] = value
		}
	}

	if err := mergo.Merge(&merged, process, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging env file with process env: %w", err)
	}

	return merged, nil
}

// resolveRootDir returns the absolute root directory, falling back to the
// working directory when no override is set.
func resolveRootDir(override string) (string, error) {
	if override == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error resolving working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("error resolving root directory %s: %w", override, err)
	}

	return abs, nil
}
