// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stbmatch

import "math/rand/v2"

// NewRand returns a PCG backed Rand. The same seed replays the same tie
// break and the same residual draws.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed draws a fresh seed from the runtime's random source.
func NewSeed() uint64 {
	return rand.Uint64()
}
