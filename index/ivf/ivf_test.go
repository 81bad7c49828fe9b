package ivf

import (
	"bytes"
	"testing"

	"github.com/LuciAkirami/vegamdb/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colinearData() []float32 {
	return []float32{0, 1, 10, 11}
}

func TestIVF(t *testing.T) {
	t.Run("Untrained_KGreaterThanN", func(t *testing.T) {
		idx := New(Options{NClusters: 5, Dimension: 1, MaxIters: 10, DefaultNProbe: 1})
		require.NoError(t, idx.Build(colinearData(), 4, 1))
		assert.False(t, idx.IsTrained())

		_, err := idx.Search(colinearData(), []float32{0}, 2, nil)
		assert.Error(t, err)
		assert.IsType(t, &index.ErrNotTrained{}, err)
	})

	t.Run("Build_NClustersZero_InvalidParameter", func(t *testing.T) {
		idx := New(Options{NClusters: 0, Dimension: 1, MaxIters: 10, DefaultNProbe: 1})

		err := idx.Build(colinearData(), 4, 1)
		assert.Error(t, err)
		assert.IsType(t, &index.ErrInvalidParameter{}, err)
		assert.False(t, idx.IsTrained())
	})

	t.Run("Build_SeparatesColinearClusters", func(t *testing.T) {
		idx := New(Options{NClusters: 2, Dimension: 1, MaxIters: 50, DefaultNProbe: 1})
		require.NoError(t, idx.Build(colinearData(), 4, 1))
		require.True(t, idx.IsTrained())

		results, err := idx.Search(colinearData(), []float32{0}, 2, SearchParams{NProbe: 1})
		require.NoError(t, err)
		require.Len(t, results, 2)

		ids := []uint32{results[0].ID, results[1].ID}
		assert.ElementsMatch(t, []uint32{0, 1}, ids)
	})

	t.Run("NProbe_WidensSearch", func(t *testing.T) {
		idx := New(Options{NClusters: 2, Dimension: 1, MaxIters: 50, DefaultNProbe: 1})
		require.NoError(t, idx.Build(colinearData(), 4, 1))

		narrow, err := idx.Search(colinearData(), []float32{5.5}, 2, SearchParams{NProbe: 1})
		require.NoError(t, err)
		require.Len(t, narrow, 2)

		wide, err := idx.Search(colinearData(), []float32{5.5}, 2, SearchParams{NProbe: 2})
		require.NoError(t, err)
		require.Len(t, wide, 2)

		narrowIDs := []uint32{narrow[0].ID, narrow[1].ID}
		wideIDs := []uint32{wide[0].ID, wide[1].ID}
		assert.NotEqual(t, narrowIDs, wideIDs)
	})

	t.Run("SaveLoad_RoundTrip", func(t *testing.T) {
		idx := New(Options{NClusters: 2, Dimension: 1, MaxIters: 50, DefaultNProbe: 1})
		require.NoError(t, idx.Build(colinearData(), 4, 1))

		var buf bytes.Buffer
		require.NoError(t, idx.Save(&buf))

		loaded := New(Options{NClusters: 2, Dimension: 1, MaxIters: 999, DefaultNProbe: 1})
		require.NoError(t, loaded.Load(&buf, 1))
		require.True(t, loaded.IsTrained())

		before, err := idx.Search(colinearData(), []float32{0}, 2, SearchParams{NProbe: 2})
		require.NoError(t, err)
		after, err := loaded.Search(colinearData(), []float32{0}, 2, SearchParams{NProbe: 2})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
