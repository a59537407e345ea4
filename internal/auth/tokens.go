// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth issues and verifies the HMAC-signed tokens handed to world
// clients. It is a thin consumer of the configured JWT secret.
package auth

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySignKey is returned by [NewTokens] when no secret is given.
var ErrEmptySignKey = errors.New("empty token sign key")

// Claims is the caller-supplied token payload.
type Claims map[string]any

// Tokens signs and verifies HS256 tokens with one secret. It holds no
// mutable state and is safe for concurrent use.
type Tokens struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewTokens returns a Tokens using signKey. A positive ttl adds an "exp"
// claim to every signed token; zero issues tokens without expiry.
func NewTokens(signKey string, ttl time.Duration) (*Tokens, error) {
	if signKey == "" {
		return nil, ErrEmptySignKey
	}

	return &Tokens{
		signKey: []byte(signKey),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Sign returns the compact serialization of a token carrying claims plus an
// "iat" claim (and "exp" when a ttl is configured).
func (t *Tokens) Sign(ctx context.Context, claims Claims) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := t.now()
	mapClaims := jwt.MapClaims{}
	maps.Copy(mapClaims, claims)
	mapClaims["iat"] = jwt.NewNumericDate(now)
	if t.ttl > 0 {
		mapClaims["exp"] = jwt.NewNumericDate(now.Add(t.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(t.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and time claims of tokenString and returns its
// payload. Any failure, including expiry, tampering or a foreign signing
// method, is reported as (nil, false) rather than an error.
func (t *Tokens) Verify(ctx context.Context, tokenString string) (Claims, bool) {
	if ctx.Err() != nil || tokenString == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return t.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	return Claims(mapClaims), true
}
