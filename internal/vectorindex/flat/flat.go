// Package flat provides an exact nearest-neighbour vector index.
//
// The index is a brute-force structure: every query compares against
// every stored vector by squared Euclidean distance. Corpora are small
// (tens to low hundreds of chunks per topic), so exactness costs
// nothing and there is no need for approximate structures.
package flat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// fileMagic identifies a serialized flat index file.
const fileMagic uint32 = 0x464C5431 // "FLT1"

// Hit is a single search result: the position of the stored vector and
// its squared Euclidean distance from the query.
type Hit struct {
	// Position is the insertion-order index of the matched vector. It
	// maps back to the chunk manifest entry at the same position.
	Position int

	// Distance is the squared Euclidean distance (0 = identical).
	Distance float64
}

// Index stores fixed-dimension vectors and supports exact k-NN search.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("flat: dimension must be positive, got %d", dimension)
	}
	return &Index{dimension: dimension}, nil
}

// Build creates an index from a batch of vectors.
func Build(dimension int, vectors [][]float32) (*Index, error) {
	idx, err := New(dimension)
	if err != nil {
		return nil, err
	}
	if err := idx.Add(vectors...); err != nil {
		return nil, err
	}
	return idx, nil
}

// Dimension returns the vector dimension.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Add appends vectors in order. Positions are assigned by insertion
// order and never change.
func (idx *Index) Add(vectors ...[]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, v := range vectors {
		if len(v) != idx.dimension {
			return fmt.Errorf("flat: vector has dimension %d, index expects %d: %w",
				len(v), idx.dimension, domain.ErrDimensionMismatch)
		}
	}
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search returns the k stored vectors closest to the query, ascending
// by distance. If k exceeds the number of stored vectors, all of them
// are returned. An empty index returns no hits, not an error.
func (idx *Index) Search(query []float32, k int) ([]Hit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(query) != idx.dimension {
		return nil, fmt.Errorf("flat: query has dimension %d, index expects %d: %w",
			len(query), idx.dimension, domain.ErrDimensionMismatch)
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}

	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{Position: i, Distance: squaredL2(query, v)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// SaveFile serializes the index losslessly to path.
// Layout: magic, dimension and count as little-endian uint32, followed
// by count*dimension little-endian float32 values.
func (idx *Index) SaveFile(path string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("flat: create index file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := []uint32{fileMagic, uint32(idx.dimension), uint32(len(idx.vectors))}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			return fmt.Errorf("flat: write header: %w", err)
		}
	}

	buf := make([]byte, 4)
	for _, v := range idx.vectors {
		for _, x := range v {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("flat: write vector: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flat: flush index file: %w", err)
	}
	return nil
}

// LoadFile deserializes an index previously written by SaveFile.
// A restored index returns identical search results to the original.
// Returns domain.ErrNotFound when the file does not exist and
// domain.ErrCorruptIndex when it cannot be parsed.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("flat: open index file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic, dimension, count uint32
	for _, dst := range []*uint32{&magic, &dimension, &count} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("flat: read header: %w", domain.ErrCorruptIndex)
		}
	}
	if magic != fileMagic || dimension == 0 {
		return nil, fmt.Errorf("flat: bad index header: %w", domain.ErrCorruptIndex)
	}

	idx := &Index{dimension: int(dimension)}
	idx.vectors = make([][]float32, 0, count)
	buf := make([]byte, 4)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dimension)
		for j := range v {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("flat: truncated vector data: %w", domain.ErrCorruptIndex)
			}
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		idx.vectors = append(idx.vectors, v)
	}

	// The declared count must account for the whole payload; trailing
	// bytes mean the header and data disagree.
	if _, err := r.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("flat: trailing data after %d vectors: %w", count, domain.ErrCorruptIndex)
	}

	return idx, nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
