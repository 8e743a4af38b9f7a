// hash.go -- the DJB-style hash used throughout the on-disk format.
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package cdb

// hashKey computes the 32-bit DJB-style hash used by the on-disk
// format: seed 5381, h = ((h<<5)+h) XOR b for every byte, wrapping
// 32-bit arithmetic throughout.
//
// This hash is interface-critical: it is part of the on-disk format
// and must never change, and no hash other than this one may be
// substituted (spec non-goal).
func hashKey(key []byte) uint32 {
	h := djbSeed
	for _, b := range key {
		h = ((h << 5) + h) ^ uint32(b)
	}
	return h
}

// table picks the top-level bucket for a hash value.
func table(h uint32) uint32 {
	return h % numTables
}

// startSlot picks the probe-sequence start slot within a bucket of
// length t.
func startSlot(h uint32, t uint32) uint32 {
	return (h >> 8) % t
}
