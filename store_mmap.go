// store_mmap.go -- memory-mapped backing store, the default --access mode.
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
	"fmt"
	"os"

	"github.com/opencoff/go-mmap"
)

// mmapStore memory-maps the whole file read-only. ReadAt returns a
// borrowed sub-slice of the mapping with no copy, just like
// sliceStore.
type mmapStore struct {
	fd      *os.File
	own     bool
	mapping *mmap.Mapping
	bs      []byte
}

// NewMmapStore memory-maps fd read-only and wraps it as a Store.
func NewMmapStore(fd *os.File) (Store, error) {
	st, err := fd.Stat()
	if err != nil {
		return nil, err
	}

	sz := st.Size()
	mm := mmap.New(fd)
	mapping, err := mm.Map(sz, 0, mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		return nil, fmt.Errorf("%s: can't mmap %d bytes: %w", fd.Name(), sz, err)
	}

	return &mmapStore{fd: fd, mapping: mapping, bs: mapping.Bytes()}, nil
}

// OpenMmapStore opens 'path' and memory-maps it, owning the resulting
// file descriptor and mapping.
func OpenMmapStore(path string) (Store, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewMmapStore(fd)
	if err != nil {
		fd.Close()
		return nil, err
	}
	s.(*mmapStore).own = true
	return s, nil
}

func (s *mmapStore) ReadAt(pos, n int64) ([]byte, error) {
	end, ok := addOverflowCheck(pos, n)
	if !ok || pos < 0 || end > int64(len(s.bs)) {
		return nil, fmt.Errorf("%w: read [%d,%d) past end (%d bytes)", ErrOutOfBounds, pos, end, len(s.bs))
	}
	return s.bs[pos:end], nil
}

func (s *mmapStore) Size() int64 { return int64(len(s.bs)) }

func (s *mmapStore) Close() error {
	s.mapping.Unmap()
	if s.own {
		return s.fd.Close()
	}
	return nil
}
