// placement.go -- open-addressing strategies for filling one
// bucket's on-disk slot array.
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

// entry is one pending (hash, record-offset) pair a bucket is
// waiting to place into its slot array.
type entry struct {
	hash uint32
	off  uint32
}

// Strategy selects how Writer.Finish fills each bucket's slot array.
// All strategies produce files that satisfy the reader's probe-order
// discoverability guarantee; they differ only in lookup-cost
// distribution, never in correctness.
type Strategy int

const (
	// StrategyRobinHood minimizes worst-case probe length by
	// swapping displaced entries to equalize probe distances. Default.
	StrategyRobinHood Strategy = iota

	// StrategyLinear places each entry at its start slot, advancing
	// linearly on collision. Simple, insertion-order sensitive.
	StrategyLinear

	// StrategyTree maintains a free-slot index (a path-compressed
	// "next free slot" forest) and places each entry at the first
	// free slot at or after its start, wrapping.
	StrategyTree
)

// placer arranges a bucket's pending entries into a slot array of
// length t = 2*len(entries).
type placer func(entries []entry, t uint32) []entry

func newPlacer(s Strategy) placer {
	switch s {
	case StrategyLinear:
		return linearPlace
	case StrategyTree:
		return treePlace
	default:
		return robinHoodPlace
	}
}

// linearPlace probes forward from each entry's start slot until it
// finds an empty one.
func linearPlace(entries []entry, t uint32) []entry {
	slots := make([]entry, t)
	for _, e := range entries {
		pos := startSlot(e.hash, t)
		for slots[pos].off != 0 {
			pos = (pos + 1) % t
		}
		slots[pos] = e
	}
	return slots
}

// robinHoodPlace probes forward, but swaps the incumbent out whenever
// it has traveled a shorter distance from its own start than the
// entry currently being inserted, so no slot ends up arbitrarily far
// from its ideal position.
func robinHoodPlace(entries []entry, t uint32) []entry {
	slots := make([]entry, t)
	for _, e := range entries {
		pos := startSlot(e.hash, t)
		cur := e
		dist := uint32(0)

		for {
			if slots[pos].off == 0 {
				slots[pos] = cur
				break
			}

			incumbentStart := startSlot(slots[pos].hash, t)
			incumbentDist := probeDistance(incumbentStart, pos, t)
			// At equal distance both entries share a start slot; the
			// earlier record (lower offset) keeps the earlier slot, so
			// duplicates of a key stay in insertion order.
			if incumbentDist < dist || (incumbentDist == dist && slots[pos].off > cur.off) {
				slots[pos], cur = cur, slots[pos]
				dist = incumbentDist
			}

			pos = (pos + 1) % t
			dist++
		}
	}
	return slots
}

// probeDistance is how many steps the probe sequence traveled from
// 'start' to reach 'pos', wrapping modulo t.
func probeDistance(start, pos, t uint32) uint32 {
	return (pos - start + t) % t
}

// treePlace places each entry at the first free slot at or after its
// start, using a disjoint-set "next free slot" forest so repeated
// probing under skewed bucket populations does not degrade to a long
// linear scan.
func treePlace(entries []entry, t uint32) []entry {
	slots := make([]entry, t)
	free := newFreeSlotIndex(t)
	for _, e := range entries {
		pos := free.take(startSlot(e.hash, t))
		slots[pos] = e
	}
	return slots
}

// freeSlotIndex is a path-compressed union-find over slot indices
// 0..t-1 plus one sentinel at index t. find(i) returns the smallest
// unallocated index >= i; take(i) allocates and returns that index,
// wrapping once to the start of the array if the scan runs off the
// end (guaranteed to find a free slot, since fill factor is 2).
type freeSlotIndex struct {
	parent []uint32
}

func newFreeSlotIndex(t uint32) *freeSlotIndex {
	p := make([]uint32, t+1)
	for i := range p {
		p[i] = uint32(i)
	}
	return &freeSlotIndex{parent: p}
}

func (f *freeSlotIndex) find(i uint32) uint32 {
	for f.parent[i] != i {
		f.parent[i] = f.parent[f.parent[i]] // path halving
		i = f.parent[i]
	}
	return i
}

func (f *freeSlotIndex) take(start uint32) uint32 {
	t := uint32(len(f.parent) - 1)
	slot := f.find(start)
	if slot == t {
		slot = f.find(0)
	}
	f.parent[slot] = slot + 1
	return slot
}
