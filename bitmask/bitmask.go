/*
Package bitmask provides a fixed-width bit-vector used to identify the
subset of dataset rows captured by a subtree. Capture sets are the only
state canonical tree identity is derived from, so the hash and equality
defined here are structural: two bitmasks with the same width and the
same bits set are interchangeable regardless of how they were built.
*/
package bitmask

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const wordBits = 64

/*
Bitmask is a fixed-width bit-vector. The width is set at construction
and never changes; indices outside [0, Size()) are out of contract.
*/
type Bitmask struct {
	size  int
	words []uint64
}

/*
New returns a bitmask of the given width with no bits set.
*/
func New(size int) *Bitmask {
	return &Bitmask{size: size, words: make([]uint64, (size+wordBits-1)/wordBits)}
}

/*
FromIndices returns a bitmask of the given width with the bits at the
given indices set.
*/
func FromIndices(size int, indices ...int) *Bitmask {
	bm := New(size)
	for _, i := range indices {
		bm.Set(i)
	}
	return bm
}

// Size returns the width of the bitmask.
func (bm *Bitmask) Size() int {
	return bm.size
}

// Set sets the bit at index i.
func (bm *Bitmask) Set(i int) {
	bm.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

// Get reports whether the bit at index i is set.
func (bm *Bitmask) Get(i int) bool {
	return bm.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// Count returns the number of set bits.
func (bm *Bitmask) Count() int {
	var count int
	for _, w := range bm.words {
		count += bits.OnesCount64(w)
	}
	return count
}

/*
LowestBit returns the index of the lowest set bit, or -1 if no bit is
set. Canonicalization orders leaf capture sets by this value.
*/
func (bm *Bitmask) LowestBit() int {
	for i, w := range bm.words {
		if w != 0 {
			return i*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

/*
Hash returns a structural hash of the bitmask: a function of its width
and set bits only.
*/
func (bm *Bitmask) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(bm.size))
	d.Write(buf[:])
	for _, w := range bm.words {
		binary.LittleEndian.PutUint64(buf[:], w)
		d.Write(buf[:])
	}
	return d.Sum64()
}

/*
Equals reports whether the other bitmask has the same width and exactly
the same bits set.
*/
func (bm *Bitmask) Equals(other *Bitmask) bool {
	if other == nil || bm.size != other.size {
		return false
	}
	for i, w := range bm.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the bitmask.
func (bm *Bitmask) Clone() *Bitmask {
	c := &Bitmask{size: bm.size, words: make([]uint64, len(bm.words))}
	copy(c.words, bm.words)
	return c
}

func (bm *Bitmask) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for i := 0; i < bm.size; i++ {
		if bm.Get(i) {
			if !first {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d", i)
			first = false
		}
	}
	sb.WriteString("}")
	return sb.String()
}
