// Package vectorstore owns the raw vector data backing a database: a single
// contiguous matrix of float32 values plus the count and dimension that
// describe it. It supports append-only writes (single or batched) and a
// binary save/load round trip; it never deletes or mutates a stored vector.
package vectorstore

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/LuciAkirami/vegamdb/core"
)

// Store is the canonical, append-only home for a database's vectors.
//
// Vectors are stored contiguously in a single []float32 slice: vector i
// occupies data[i*dim : (i+1)*dim]. This keeps sequential and batch scans
// (Flat search, k-means assignment) cache-friendly.
//
// Dimension is adopted from the first appended vector and is fixed from
// then on; later appends of a different length fail with
// ErrDimensionMismatch. Store is not safe for concurrent use: callers must
// serialize Append/AppendBulk/Load against concurrent Get/All/Save.
type Store struct {
	data []float32
	dim  int
	n    int
}

// New returns an empty store. Its dimension is adopted on first append.
func New() *Store {
	return &Store{}
}

// Dimension returns the store's fixed vector dimension, or 0 if no vector
// has been appended yet.
func (s *Store) Dimension() int {
	return s.dim
}

// Len returns the number of vectors currently stored.
func (s *Store) Len() int {
	return s.n
}

// Append adds vec to the store and returns its id.
//
// On the first call, the store adopts dim := len(vec). Every subsequent
// call must supply a vector of that same length or it fails with
// ErrDimensionMismatch and the store is left unchanged.
func (s *Store) Append(vec []float32) (core.LocalID, error) {
	if s.n == 0 && s.dim == 0 {
		s.dim = len(vec)
	}
	if len(vec) != s.dim {
		return 0, &ErrDimensionMismatch{Expected: s.dim, Actual: len(vec)}
	}

	id := core.LocalID(s.n)
	s.data = append(s.data, vec...)
	s.n++
	return id, nil
}

// AppendBulk appends n vectors of dimension dim supplied as a single
// contiguous row-major buffer (buf[i*dim:(i+1)*dim] is the i-th vector).
// It is equivalent to calling Append n times but avoids the per-vector
// call overhead when ingesting from a flat buffer (e.g. a language
// binding's zero-copy input).
func (s *Store) AppendBulk(buf []float32, n, dim int) error {
	if len(buf) != n*dim {
		return fmt.Errorf("vectorstore: buffer length %d does not match n*dim (%d*%d)", len(buf), n, dim)
	}
	if s.n == 0 && s.dim == 0 {
		s.dim = dim
	}
	if dim != s.dim {
		return &ErrDimensionMismatch{Expected: s.dim, Actual: dim}
	}

	s.data = append(s.data, buf...)
	s.n += n
	return nil
}

// Get returns a read-only view of the i-th vector. The returned slice
// aliases the store's internal memory; callers must not modify it and must
// not retain it past the store's next mutation.
func (s *Store) Get(id core.LocalID) ([]float32, error) {
	i := int(id)
	if i < 0 || i >= s.n {
		return nil, &ErrOutOfRange{ID: uint32(id), Count: s.n}
	}
	start := i * s.dim
	return s.data[start : start+s.dim : start+s.dim], nil
}

// All returns a read-only view of the full N*D matrix, row-major.
func (s *Store) All() []float32 {
	return s.data
}

// save header: N:i32, D:i32. If N==0, nothing further is written.
func (s *Store) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(s.n)); err != nil {
		return fmt.Errorf("vectorstore: write count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(s.dim)); err != nil {
		return fmt.Errorf("vectorstore: write dimension: %w", err)
	}
	if s.n == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, s.data); err != nil {
		return fmt.Errorf("vectorstore: write matrix: %w", err)
	}
	return nil
}

// Load resets the store's state and reads a matrix previously written by
// Save. Dimension is restored from the header, overriding whatever the
// store held before.
func (s *Store) Load(r io.Reader) error {
	var n, dim int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("vectorstore: read count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return fmt.Errorf("vectorstore: read dimension: %w", err)
	}
	if n < 0 || dim < 0 {
		return fmt.Errorf("vectorstore: corrupt header: n=%d dim=%d", n, dim)
	}

	data := make([]float32, int(n)*int(dim))
	if len(data) > 0 {
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return fmt.Errorf("vectorstore: read matrix: %w", err)
		}
	}

	s.n = int(n)
	s.dim = int(dim)
	s.data = data
	return nil
}
