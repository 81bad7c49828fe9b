package ivf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/index"
)

// Save writes: num_centroids:i32, D:i32, centroids[num_centroids*D]:f32,
// then for each cell in centroid order: (bucket_size:i32, bucket_ids:i32*bucket_size).
//
// max_iters and default_n_probe are intentionally not written; they are
// constructor-time configuration, not learned state.
func (ivf *IVF) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(ivf.centroids))); err != nil {
		return fmt.Errorf("ivf: write num_centroids: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(ivf.dimension)); err != nil {
		return fmt.Errorf("ivf: write dimension: %w", err)
	}

	for _, c := range ivf.centroids {
		if err := binary.Write(w, binary.LittleEndian, c); err != nil {
			return fmt.Errorf("ivf: write centroid: %w", err)
		}
	}

	for _, bucket := range ivf.buckets {
		if err := binary.Write(w, binary.LittleEndian, int32(len(bucket))); err != nil {
			return fmt.Errorf("ivf: write bucket size: %w", err)
		}
		ids := make([]int32, len(bucket))
		for i, id := range bucket {
			ids[i] = int32(id)
		}
		if err := binary.Write(w, binary.LittleEndian, ids); err != nil {
			return fmt.Errorf("ivf: write bucket ids: %w", err)
		}
	}
	return nil
}

// Load restores n_clusters from num_centroids and dimension from D.
// max_iters and default_n_probe retain whatever value the constructor set.
func (ivf *IVF) Load(r io.Reader, dim int) error {
	var numCentroids, d int32
	if err := binary.Read(r, binary.LittleEndian, &numCentroids); err != nil {
		return fmt.Errorf("ivf: read num_centroids: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
		return fmt.Errorf("ivf: read dimension: %w", err)
	}
	if numCentroids < 0 || d < 0 {
		return &index.ErrCorruptPayload{Index: ivf.Name(), Reason: "negative num_centroids or dimension"}
	}

	centroids := make([][]float32, numCentroids)
	for i := range centroids {
		c := make([]float32, d)
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			return fmt.Errorf("ivf: read centroid %d: %w", i, err)
		}
		centroids[i] = c
	}

	buckets := make([][]core.LocalID, numCentroids)
	for i := range buckets {
		var bucketSize int32
		if err := binary.Read(r, binary.LittleEndian, &bucketSize); err != nil {
			return fmt.Errorf("ivf: read bucket %d size: %w", i, err)
		}
		if bucketSize < 0 {
			return &index.ErrCorruptPayload{Index: ivf.Name(), Reason: "negative bucket size"}
		}

		raw := make([]int32, bucketSize)
		if bucketSize > 0 {
			if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
				return fmt.Errorf("ivf: read bucket %d ids: %w", i, err)
			}
		}
		ids := make([]core.LocalID, bucketSize)
		for j, v := range raw {
			ids[j] = core.LocalID(v)
		}
		buckets[i] = ids
	}

	ivf.nClusters = int(numCentroids)
	ivf.dimension = int(d)
	ivf.centroids = centroids
	ivf.buckets = buckets
	return nil
}
