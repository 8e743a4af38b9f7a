// lookup.go -- multi-value lookup iterator.
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
	"bytes"
)

// lookupState is the resumable cursor behind a Lookup iterator. It
// is a plain, copyable value with no reference back to the Reader or
// the key it was created for, so that host bindings can keep it
// alive independently of the Go-side LookupIter across calls. Step
// it forward with next(reader, key).
type lookupState struct {
	khash  uint32 // hash of the key being looked up
	hpos   uint32 // file position of this key's hash table
	hslots uint32 // number of slots in that table
	kpos   uint32 // next slot position to probe
	loop   uint32 // number of slots visited so far
	initOK bool   // true once hpos/hslots/kpos have been computed
	done   bool   // true once the iterator is exhausted (incl. on error)
	err    error  // the error that exhausted the iterator, if any
}

// init computes the starting probe position for 'key' against 'rd'.
func (s *lookupState) init(rd *Reader, key []byte) {
	s.khash = hashKey(key)
	d := rd.desc[table(s.khash)]
	s.hpos = d.pos
	s.hslots = d.len
	if s.hslots == 0 {
		s.done = true
		s.initOK = true
		return
	}
	s.kpos = s.hpos + startSlot(s.khash, s.hslots)*slotSize
	s.initOK = true
}

// next walks the probe sequence for 'key' starting from the current
// cursor and returns the next matching value, or nil when the
// iterator is exhausted. A non-nil error permanently exhausts the
// iterator.
func (s *lookupState) next(rd *Reader, key []byte) ([]byte, error) {
	if !s.initOK {
		s.init(rd, key)
	}
	if s.done {
		return nil, nil
	}

	for s.loop < s.hslots {
		storedHash, recOff, err := rd.readSlot(s.kpos)
		if err != nil {
			s.done, s.err = true, err
			return nil, err
		}

		s.loop++
		s.kpos += slotSize
		if s.kpos == s.hpos+s.hslots*slotSize {
			s.kpos = s.hpos
		}

		if recOff == 0 {
			s.done = true
			return nil, nil
		}
		if storedHash != s.khash {
			continue
		}

		rkey, rval, err := rd.readRecord(recOff)
		if err != nil {
			s.done, s.err = true, err
			return nil, err
		}
		if !bytes.Equal(rkey, key) {
			continue
		}

		// Own the returned value: readRecord's slice may be a
		// store-owned scratch buffer that the next ReadAt call
		// overwrites (fileStore/bufFileStore).
		val := make([]byte, len(rval))
		copy(val, rval)
		return val, nil
	}

	s.done = true
	return nil, nil
}

// LookupIter iterates over every value stored under one key, in the
// order the writer wrote them. It borrows the Reader and the key for
// its lifetime (the "adaptor" shape); see lookupState for a shape
// that owns its cursor independently.
type LookupIter struct {
	rd    *Reader
	key   []byte
	state lookupState
}

// Lookup returns an iterator over every value stored under 'key', in
// insertion order. Always returns a non-nil iterator, even when the
// key has no values.
func (rd *Reader) Lookup(key []byte) *LookupIter {
	return &LookupIter{rd: rd, key: key}
}

// Next returns the next value for this key, or (nil, nil) once
// exhausted. Any I/O or bounds error permanently exhausts the
// iterator and is returned exactly once.
func (it *LookupIter) Next() ([]byte, error) {
	return it.state.next(it.rd, it.key)
}

// State returns a copy of the iterator's cursor, suitable for
// persisting across calls without holding a reference to this
// LookupIter (e.g. from a host-language binding). Use it together
// with Reader.Lookup's key and Reader.resumeLookup.
func (it *LookupIter) State() lookupState {
	return it.state
}

// resumeLookup advances an independently-held lookupState, the
// "state object" shape described for host bindings: the caller owns
// 'state' and 'key', and only needs a handle to the Reader to step
// the cursor forward.
func (rd *Reader) resumeLookup(state *lookupState, key []byte) ([]byte, error) {
	return state.next(rd, key)
}
