// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ReadOptions controls how [ReadEnv] resolves a single variable.
type ReadOptions struct {
	// Required makes an absent or blank variable an error unless Default is set.
	Required bool
	// Default is returned when the variable is absent or blank. A non-nil
	// Default bypasses Required.
	Default *string
	// AllowEmpty keeps a blank (whitespace-only) value as a valid empty
	// string instead of treating it as absent.
	AllowEmpty bool
}

// IntOptions constrains [ParseInteger]. Nil bounds are unbounded; both bounds
// are inclusive. Zero is accepted unless DisallowZero is set.
type IntOptions struct {
	Min          *int
	Max          *int
	DisallowZero bool
}

// URLOptions constrains [NormaliseURL].
type URLOptions struct {
	// Protocols is the whitelist of schemes accepted for absolute URLs,
	// written without the trailing colon (e.g. "ws", "wss"). Empty means any.
	Protocols []string
}

func defaultValue(v string) *string {
	return &v
}

func bound(v int) *int {
	return &v
}

// ReadEnv resolves key from env.
//
// The second return value reports whether a value (possibly the default) was
// resolved. An absent optional variable yields ("", false, nil).
func ReadEnv(env Environment, key string, opts ReadOptions) (string, bool, error) {
	raw, ok := env[key]
	if ok {
		value := strings.TrimSpace(raw)
		if value != "" || opts.AllowEmpty {
			return value, true, nil
		}
	}

	if opts.Default != nil {
		return *opts.Default, true, nil
	}
	if opts.Required {
		return "", false, newVariableError(key, ErrMissingRequiredVariable, "variable is not set")
	}

	return "", false, nil
}

// EnsureRelativePath returns the cleaned form of value, rejecting absolute
// paths and anything that still escapes upwards after cleaning.
func EnsureRelativePath(value, key string) (string, error) {
	if filepath.IsAbs(value) || strings.HasPrefix(value, "/") || strings.HasPrefix(value, `\`) {
		return "", newVariableError(key, ErrInvalidPath, "%q must be a relative path", value)
	}

	normalized := filepath.Clean(value)
	parent := ".." + string(filepath.Separator)
	if normalized == ".." || strings.HasPrefix(normalized, parent) || strings.HasPrefix(normalized, "../") {
		return "", newVariableError(key, ErrInvalidPath, "%q must not traverse outside the root directory", value)
	}

	return normalized, nil
}

// ParseInteger parses value as a base-10 integer within the bounds of opts.
func ParseInteger(value, key string, opts IntOptions) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, newVariableError(key, ErrInvalidInteger, "%q is not an integer", value)
	}

	if n == 0 && opts.DisallowZero {
		return 0, newVariableError(key, ErrInvalidInteger, "must not be zero")
	}
	if opts.Min != nil && n < *opts.Min {
		return 0, newVariableError(key, ErrInvalidInteger, "%d is less than %d", n, *opts.Min)
	}
	if opts.Max != nil && n > *opts.Max {
		return 0, newVariableError(key, ErrInvalidInteger, "%d is greater than %d", n, *opts.Max)
	}

	return n, nil
}

// NormaliseURL accepts either an absolute URL or a root-relative path and
// returns it without a trailing slash.
//
// Absolute URLs must use one of opts.Protocols when the whitelist is set.
// Protocol-relative values ("//host/path") are rejected: they would resolve to
// a foreign origin while bypassing the whitelist.
func NormaliseURL(value, key string, opts URLOptions) (string, error) {
	u, err := url.Parse(value)
	if err == nil && u.Scheme != "" {
		if len(opts.Protocols) > 0 && !slices.Contains(opts.Protocols, u.Scheme) {
			return "", newVariableError(key, ErrInvalidURL,
				"protocol %q is not one of %s", u.Scheme, strings.Join(opts.Protocols, ", "))
		}
		u.Host = strings.ToLower(u.Host)
		return strings.TrimSuffix(u.String(), "/"), nil
	}

	if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
		return strings.TrimSuffix(value, "/"), nil
	}

	return "", newVariableError(key, ErrInvalidURL, "%q is neither an absolute URL nor a root-relative path", value)
}
