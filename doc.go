// Package vegamdb is an in-memory vector database providing k-nearest-
// neighbor search over fixed-dimensional float32 vectors under Euclidean
// distance.
//
// A DB owns a vectorstore.Store and an optional current index.Index. Three
// index strategies are available: flat.Flat (exact brute force),
// ivf.IVF (k-means coarse quantization), and annoy.Annoy (a
// random-projection tree forest). A DB with no index installed defaults
// to Flat on first search.
package vegamdb
