// doc.go - top level documentation
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

// Package cdb reads and writes "constant databases": immutable,
// on-disk associative arrays from byte-string keys to byte-string
// values, built once in a single streaming pass and optimized for
// fast random lookup thereafter.
//
// The on-disk layout is bit-compatible with D. J. Bernstein's cdb
// format: http://cr.yp.to/cdb.html -- 256 fixed top-level hash
// tables, open-addressed slot arrays, and a DJB-style 32-bit hash.
//
// The primary user interface is via the 'Reader' and 'Writer' objects.
// A Writer streams <key, value> pairs to a seekable sink and, on
// Finish, emits the collision-resolved slot tables and file header.
// A Reader opens a previously written file (optionally memory mapped)
// and answers Get, Lookup and All queries against it.
package cdb
