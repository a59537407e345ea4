// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hashing computes content digests for uploaded files.
//
// Digests are the lowercase hex encoding of SHA-256 over the raw bytes, the
// same value a browser produces with crypto.subtle.digest("SHA-256", buf)
// followed by hex encoding, so hashes computed on either side of an upload
// can be compared directly.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"
)

// hasherPool holds reusable SHA-256 instances to avoid an allocation per
// upload on hot paths.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Sum returns the hex-encoded SHA-256 digest of data.
//
// Example usage:
//
//	hash := hashing.Sum(fileBytes) // "e3b0c442..."
func Sum(data []byte) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}

// SumReader streams r through SHA-256 and returns the hex digest together
// with the number of bytes read.
func SumReader(r io.Reader) (string, int64, error) {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, fmt.Errorf("error hashing content: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}
