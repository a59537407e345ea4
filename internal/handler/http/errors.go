// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the handlers and the authentication middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header cannot be
	// split into a scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the scheme is present but the token
	// value is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrAdminDisabled is returned when no admin code is configured.
	ErrAdminDisabled = errors.New("admin access is disabled")

	// ErrWrongAdminCode is returned when the submitted admin code does not match.
	ErrWrongAdminCode = errors.New("wrong admin code")

	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")

	// ErrNoFile is returned when a multipart upload has no "file" part.
	ErrNoFile = errors.New("no file in upload")
)
