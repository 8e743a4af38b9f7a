// reader.go -- random-access lookup and validation of a cdb file.
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
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// desc is one (pos, len) header descriptor: the position and slot
// count of one top-level bucket's slot array.
type desc struct {
	pos uint32
	len uint32
}

// Reader is a read-only, random-access view of a cdb file. It is
// safe for concurrent use by multiple goroutines provided the
// underlying Store is (sliceStore and mmapStore are; fileStore and
// bufFileStore are not, since they mutate a shared cursor).
type Reader struct {
	store Store
	desc  [numTables]desc
	cache *lru.Cache[string, []byte]
}

// AccessMode selects the Store implementation Open uses.
type AccessMode int

const (
	// AccessMmap memory-maps the file (the default).
	AccessMmap AccessMode = iota
	// AccessReader reads via Seek+Read with a reused scratch buffer.
	AccessReader
	// AccessBufReader reads via a bufio.Reader, favoring sequential scans.
	AccessBufReader
)

// ParseAccessMode converts the CLI's --access values into an AccessMode.
func ParseAccessMode(s string) (AccessMode, error) {
	switch s {
	case "", "mmap":
		return AccessMmap, nil
	case "reader":
		return AccessReader, nil
	case "bufreader":
		return AccessBufReader, nil
	default:
		return 0, fmt.Errorf("cdb: unknown access mode %q", s)
	}
}

// Open opens the cdb file at 'path' using the given access mode and
// returns a ready-to-use Reader.
func Open(path string, mode AccessMode) (*Reader, error) {
	var store Store
	var err error

	switch mode {
	case AccessMmap:
		store, err = OpenMmapStore(path)
	case AccessReader:
		store, err = OpenFileStore(path)
	case AccessBufReader:
		store, err = OpenBufFileStore(path)
	default:
		return nil, fmt.Errorf("cdb: unknown access mode %d", mode)
	}
	if err != nil {
		return nil, err
	}

	rd, err := NewReaderSize(store, defaultCacheSize)
	if err != nil {
		store.Close()
		return nil, err
	}
	return rd, nil
}

// defaultCacheSize is the opportunistic value-cache size Open installs,
// matching the teacher's NewDBReader default of 128 records.
const defaultCacheSize = 128

// NewReader validates the 2048-byte header of 'store' and returns a
// Reader over it, with no opportunistic value cache.
func NewReader(store Store) (*Reader, error) {
	return NewReaderSize(store, 0)
}

// NewReaderSize is like NewReader but also installs an opportunistic
// LRU cache of up to 'cacheSize' decoded values, consulted only by
// Get. A cacheSize of 0 disables the cache.
func NewReaderSize(store Store, cacheSize int) (*Reader, error) {
	if store.Size() < headerSize {
		return nil, fmt.Errorf("%w: file too small (%d bytes)", ErrInvalidFile, store.Size())
	}

	hdr, err := store.ReadAt(0, headerSize)
	if err != nil {
		return nil, fmt.Errorf("%w: can't read header: %v", ErrInvalidFile, err)
	}

	rd := &Reader{store: store}

	anyNonZero := false
	for i := 0; i < numTables; i++ {
		off := i * descSize
		pos := binary.LittleEndian.Uint32(hdr[off : off+4])
		n := binary.LittleEndian.Uint32(hdr[off+4 : off+8])

		if n > 0 {
			anyNonZero = true
			end, ok := addOverflowCheck(int64(pos), int64(n)*slotSize)
			if !ok || end > store.Size() {
				return nil, fmt.Errorf("%w: table %d descriptor (pos=%d, len=%d) exceeds file bounds", ErrInvalidFile, i, pos, n)
			}
		}

		rd.desc[i] = desc{pos: pos, len: n}
	}

	if !anyNonZero {
		return nil, fmt.Errorf("%w: all 256 table lengths are zero", ErrInvalidFile)
	}

	if cacheSize > 0 {
		c, err := lru.New[string, []byte](cacheSize)
		if err != nil {
			return nil, err
		}
		rd.cache = c
	}

	return rd, nil
}

// Close releases the underlying Store.
func (rd *Reader) Close() error {
	return rd.store.Close()
}

// Get returns the first value associated with 'key' in insertion
// order of duplicates, and whether it was found. Unlike Lookup, Get
// is opportunistically served from the Reader's value cache (if one
// was installed) rather than always re-walking the probe sequence.
func (rd *Reader) Get(key []byte) ([]byte, bool, error) {
	if rd.cache != nil {
		if v, ok := rd.cache.Get(string(key)); ok {
			return v, true, nil
		}
	}

	it := rd.Lookup(key)
	v, err := it.Next()
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}

	if rd.cache != nil {
		rd.cache.Add(string(key), v)
	}
	return v, true, nil
}

// readSlot reads the (hash, offset) pair stored at byte offset pos.
func (rd *Reader) readSlot(pos uint32) (hash uint32, off uint32, err error) {
	b, err := rd.store.ReadAt(int64(pos), slotSize)
	if err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint32(b[0:4]), binary.LittleEndian.Uint32(b[4:8]), nil
}

// readRecord reads the record at byte offset pos and returns its key
// and value. The returned slices are only guaranteed to remain valid
// until the next Store operation unless the Store is slice/mmap backed.
func (rd *Reader) readRecord(pos uint32) (key, val []byte, err error) {
	hdr, err := rd.store.ReadAt(int64(pos), recHdrSize)
	if err != nil {
		return nil, nil, err
	}
	klen := binary.LittleEndian.Uint32(hdr[0:4])
	vlen := binary.LittleEndian.Uint32(hdr[4:8])

	kv, err := rd.store.ReadAt(int64(pos)+recHdrSize, int64(klen)+int64(vlen))
	if err != nil {
		return nil, nil, err
	}
	return kv[:klen], kv[klen:], nil
}
