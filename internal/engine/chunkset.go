package engine

import "github.com/lithium-reducer/lithium/internal/atom"

// Chunk is one contiguous run of atoms at a fixed chunk size, tagged
// with whether minimize-around/minimize-balanced has removed it.
// Representing survival as an explicit tag rather than splicing slices
// is Design Note 3's fix for the chunk-index bookkeeping being
// bug-prone.
type Chunk struct {
	Start, End int // [Start, End) into the parts slice a ChunkSet was built from
	Removed    bool
}

// ChunkSet partitions a parts slice into fixed-size chunks (the last
// one possibly shorter) and tracks which have been removed.
type ChunkSet struct {
	Chunks []Chunk
}

// NewChunkSet splits n atoms into chunks of size cs.
func NewChunkSet(n, cs int) *ChunkSet {
	var chunks []Chunk
	for start := 0; start < n; start += cs {
		end := start + cs
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return &ChunkSet{Chunks: chunks}
}

// Surviving reports whether the chunk at index i exists and has not
// been removed.
func (cs *ChunkSet) Surviving(i int) bool {
	return i >= 0 && i < len(cs.Chunks) && !cs.Chunks[i].Removed
}

// Next returns the index of the first surviving chunk strictly after
// i, or -1 if none remains.
func (cs *ChunkSet) Next(i int) int {
	for j := i + 1; j < len(cs.Chunks); j++ {
		if !cs.Chunks[j].Removed {
			return j
		}
	}
	return -1
}

// Previous returns the index of the first surviving chunk strictly
// before i, or -1 if none remains.
func (cs *ChunkSet) Previous(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !cs.Chunks[j].Removed {
			return j
		}
	}
	return -1
}

// First returns the index of the first surviving chunk, or -1 if the
// set is empty.
func (cs *ChunkSet) First() int {
	for j := range cs.Chunks {
		if !cs.Chunks[j].Removed {
			return j
		}
	}
	return -1
}

// Remove marks indices as removed.
func (cs *ChunkSet) Remove(indices ...int) {
	for _, i := range indices {
		cs.Chunks[i].Removed = true
	}
}

// Without returns the atom sequence that results from deleting the
// given chunk indices out of full, on top of any chunk already marked
// Removed, leaving every other atom in place.
func (cs *ChunkSet) Without(full []atom.Atom, indices ...int) []atom.Atom {
	skip := make(map[int]bool, len(indices))
	for _, i := range indices {
		skip[i] = true
	}
	var out []atom.Atom
	for i, c := range cs.Chunks {
		if skip[i] || c.Removed {
			continue
		}
		out = append(out, full[c.Start:c.End]...)
	}
	return out
}

// Atoms returns the atom slice backing chunk i.
func (cs *ChunkSet) Atoms(full []atom.Atom, i int) []atom.Atom {
	return full[cs.Chunks[i].Start:cs.Chunks[i].End]
}
