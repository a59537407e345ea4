// Package config validates the world server's environment and assembles the
// immutable startup configuration.
//
// The raw environment is the process environment merged over an optional
// dotenv file. Primitive validators ([ReadEnv], [EnsureRelativePath],
// [ParseInteger], [NormaliseURL]) turn single raw strings into constrained
// values; [Load] runs them against the fixed schema in order and derives the
// world paths, default public URLs and the public environment.
//
// The main entry point is [Get], which builds the configuration once per
// process and returns the same value on every call.
package config
