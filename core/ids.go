// Package core holds identifier types shared across the engine.
package core

// LocalID is a dense, append-only identifier for a vector within a
// VectorStore. IDs are assigned in insertion order starting at 0.
type LocalID uint32
