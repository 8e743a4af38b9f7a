// const.go -- on-disk format constants
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

const (
	// numTables is the number of fixed top-level hash tables; a
	// format constant, not a tuning knob.
	numTables = 256

	// descSize is the on-disk size of one (pos, len) header descriptor.
	descSize = 8

	// headerSize is the fixed size of the file header: 256 descriptors
	// of 8 bytes each.
	headerSize = numTables * descSize

	// recHdrSize is the size of the (klen, vlen) pair preceding every record.
	recHdrSize = 8

	// slotSize is the on-disk size of one (hash, offset) slot.
	slotSize = 8

	// fillFactor is the ratio of slot-array length to bucket population.
	fillFactor = 2

	// djbSeed is the DJB hash seed.
	djbSeed = uint32(5381)
)
