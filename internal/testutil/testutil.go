// Package testutil provides seeded random vector generation shared by
// tests across the engine's packages.
package testutil

import "math/rand"

// RandomVectors returns num vectors of the given dimension, drawn from a
// rand.Rand seeded deterministically from seed.
func RandomVectors(num, dimension int, seed int64) [][]float32 {
	r := rand.New(rand.NewSource(seed))

	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = make([]float32, dimension)
		for j := range vectors[i] {
			vectors[i][j] = r.Float32()
		}
	}
	return vectors
}

// RandomMatrix is RandomVectors flattened into a single row-major buffer,
// the layout Store and the index Build/Search methods expect.
func RandomMatrix(num, dimension int, seed int64) []float32 {
	r := rand.New(rand.NewSource(seed))

	data := make([]float32, num*dimension)
	for i := range data {
		data[i] = r.Float32()
	}
	return data
}
