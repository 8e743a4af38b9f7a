// errors.go - public errors exposed by cdb
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

import (
	"errors"
	"fmt"
)

func errShortWrite(who string, n, exp int) error {
	return fmt.Errorf("%s: incomplete write; exp %d, saw %d", who, exp, n)
}

var (
	// ErrOutOfBounds is returned when a read references bytes past the
	// end of the backing store, or an arithmetic overflow occurred
	// while computing a byte range.
	ErrOutOfBounds = errors.New("cdb: out of bounds")

	// ErrInvalidFile is returned when a header-table descriptor exceeds
	// file bounds, or every descriptor is zero.
	ErrInvalidFile = errors.New("cdb: invalid file")

	// ErrClosed is returned by Writer methods called after Finish or
	// Abort has already consumed the writer.
	ErrClosed = errors.New("cdb: writer already closed")

	// ErrKeyTooLarge/ErrValueTooLarge are returned when a key or value
	// length would overflow the 32-bit on-disk length field.
	ErrKeyTooLarge   = errors.New("cdb: key larger than 2^32-1 bytes")
	ErrValueTooLarge = errors.New("cdb: value larger than 2^32-1 bytes")
)
