// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fingerprint derives stable cache keys from requests. Callers are
// expected to key caches by a fingerprint of the request rather than the
// raw request text.
package fingerprint

import (
	"fmt"
	"math/bits"

	"github.com/spaolacci/murmur3"
)

const hashBits = 64

// Key returns a stable hexadecimal fingerprint of a request assembled from
// its parts. Equal part sequences always produce equal keys; parts are
// length-delimited so shifting bytes between adjacent parts changes the key.
func Key(parts ...string) string {
	h := murmur3.New128()
	for _, part := range parts {
		// Write never returns an error for murmur3 hashes.
		fmt.Fprintf(h, "%d:", len(part))
		h.Write([]byte(part))
	}
	h1, h2 := h.Sum128()
	return fmt.Sprintf("%016x%016x", h1, h2)
}

// SimHash64 computes a 64-bit SimHash over the tokens: each token is hashed
// and every bit position accumulates a +1/-1 vote, with the majority
// deciding the fingerprint bit. Texts sharing most tokens land at a small
// Hamming distance from each other.
func SimHash64(tokens []string) uint64 {
	var votes [hashBits]int
	for _, token := range tokens {
		h := murmur3.Sum64([]byte(token))
		for i := 0; i < hashBits; i++ {
			if h>>uint(i)&1 == 1 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fp uint64
	for i, v := range votes {
		if v > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
