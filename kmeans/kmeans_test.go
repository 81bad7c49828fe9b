package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainer(t *testing.T) {
	t.Run("KGreaterThanN_ReturnsUntrainedResult", func(t *testing.T) {
		data := []float32{0, 0, 1, 1}
		tr := New(5, 10, 2)

		res := tr.Train(data)
		assert.False(t, res.Trained())
		assert.Nil(t, res.Centroids)
	})

	t.Run("KZeroOrNegative_ReturnsUntrainedResultWithoutPanicking", func(t *testing.T) {
		data := []float32{0, 0, 1, 1}

		assert.NotPanics(t, func() {
			res := New(0, 10, 2).Train(data)
			assert.False(t, res.Trained())
		})
		assert.NotPanics(t, func() {
			res := New(-1, 10, 2).Train(data)
			assert.False(t, res.Trained())
		})
	})

	t.Run("SeparatesDistinctClusters", func(t *testing.T) {
		data := []float32{
			0, 0,
			0, 1,
			1, 0,
			100, 100,
			100, 101,
			101, 100,
		}
		tr := New(2, 20, 2)

		res := tr.Train(data)
		require.True(t, res.Trained())
		require.Len(t, res.Centroids, 2)
		require.Len(t, res.Buckets, 2)

		total := 0
		for _, b := range res.Buckets {
			total += len(b)
		}
		assert.Equal(t, 6, total)

		var lowCluster, highCluster int
		if res.Centroids[0][0] < 50 {
			lowCluster, highCluster = 0, 1
		} else {
			lowCluster, highCluster = 1, 0
		}

		for _, id := range res.Buckets[lowCluster] {
			assert.Less(t, int(id), 3)
		}
		for _, id := range res.Buckets[highCluster] {
			assert.GreaterOrEqual(t, int(id), 3)
		}
	})

	t.Run("KEqualsN_EveryPointItsOwnCentroid", func(t *testing.T) {
		data := []float32{0, 0, 5, 5, 9, 9}
		tr := New(3, 5, 2)

		res := tr.Train(data)
		require.True(t, res.Trained())

		total := 0
		for _, b := range res.Buckets {
			total += len(b)
			assert.LessOrEqual(t, len(b), 1)
		}
		assert.Equal(t, 3, total)
	})
}
