// iter.go -- full-file iteration in on-disk order.
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

// Pair is one (key, value) record, as yielded by an AllIter.
type Pair struct {
	Key   []byte
	Value []byte
}

// allState is the resumable cursor behind a full-file iterator.
type allState struct {
	cursor uint32
	end    uint32
	initOK bool
	done   bool
	err    error
}

func (s *allState) init(rd *Reader) {
	s.cursor = headerSize
	// The data region ends where the first slot array begins. Writers
	// emit the data region first and then the slot arrays in bucket
	// order, so the first descriptor with a non-zero length points at
	// that position. A table with len==0 carries pos==0 and must be
	// skipped.
	s.end = uint32(rd.store.Size())
	for _, d := range rd.desc {
		if d.len > 0 {
			s.end = d.pos
			break
		}
	}
	s.initOK = true
}

// next reads and returns the next (key, value) pair in on-disk
// order, or (nil, nil) once exhausted. Any I/O or bounds error
// permanently exhausts the iterator.
func (s *allState) next(rd *Reader) (*Pair, error) {
	if !s.initOK {
		s.init(rd)
	}
	if s.done || s.cursor >= s.end {
		s.done = true
		return nil, nil
	}

	key, val, err := rd.readRecord(s.cursor)
	if err != nil {
		s.done, s.err = true, err
		s.cursor = s.end
		return nil, err
	}

	k := append([]byte(nil), key...)
	v := append([]byte(nil), val...)

	s.cursor += recHdrSize + uint32(len(key)) + uint32(len(val))
	return &Pair{Key: k, Value: v}, nil
}

// AllIter iterates over every record in the file, in the order the
// writer wrote them. It borrows the Reader for its lifetime.
type AllIter struct {
	rd    *Reader
	state allState
}

// All returns an iterator over every (key, value) pair in the file,
// in on-disk (insertion) order.
func (rd *Reader) All() *AllIter {
	return &AllIter{rd: rd}
}

// Next returns the next pair, or (nil, nil) once exhausted.
func (it *AllIter) Next() (*Pair, error) {
	return it.state.next(it.rd)
}
