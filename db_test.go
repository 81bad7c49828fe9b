package vegamdb

import (
	"bytes"
	"testing"

	"github.com/LuciAkirami/vegamdb/index/flat"
	"github.com/LuciAkirami/vegamdb/index/ivf"
	"github.com/LuciAkirami/vegamdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	t.Run("DefaultsToFlat", func(t *testing.T) {
		db := New()
		_, _ = db.AddVector([]float32{0, 0})
		_, _ = db.AddVector([]float32{3, 0})
		_, _ = db.AddVector([]float32{0, 4})
		_, _ = db.AddVector([]float32{6, 8})

		results, err := db.Search([]float32{0, 0}, 3, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, uint32(0), results[0].ID)
		assert.Equal(t, float32(0), results[0].Distance)
		assert.Equal(t, uint32(1), results[1].ID)
		assert.Equal(t, float32(9), results[1].Distance)
		assert.Equal(t, uint32(2), results[2].ID)
		assert.Equal(t, float32(16), results[2].Distance)

		assert.Equal(t, "FlatIndex", db.Index().Name())
	})

	t.Run("DimensionAdoptionAndMismatch", func(t *testing.T) {
		db := New()
		_, err := db.AddVector([]float32{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, db.Dimension())

		_, err = db.AddVector([]float32{1, 2})
		assert.Error(t, err)
		assert.IsType(t, &ErrDimensionMismatch{}, err)
	})

	t.Run("IVFFallsBackWhenKGreaterThanN", func(t *testing.T) {
		db := New()
		_, _ = db.AddVector([]float32{0})
		_, _ = db.AddVector([]float32{1})

		db.SetIndex(ivf.New(ivf.Options{NClusters: 5, Dimension: 1, MaxIters: 10, DefaultNProbe: 1}))

		results, err := db.Search([]float32{0}, 1, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "IVFIndex", db.Index().Name())
		assert.False(t, db.Index().IsTrained())
	})

	t.Run("SaveLoad_NoIndex", func(t *testing.T) {
		db := New()
		_, _ = db.AddVector([]float32{1, 2})
		_, _ = db.AddVector([]float32{3, 4})

		var buf bytes.Buffer
		require.NoError(t, db.Save(&buf))

		loaded := New()
		require.NoError(t, loaded.Load(&buf))
		assert.Equal(t, db.Size(), loaded.Size())
		assert.Nil(t, loaded.Index())
	})

	t.Run("SaveLoad_WithFlat", func(t *testing.T) {
		db := New()
		_, _ = db.AddVector([]float32{1, 2})
		_, _ = db.AddVector([]float32{3, 4})
		db.SetIndex(flat.New())
		require.NoError(t, db.BuildIndex())

		var buf bytes.Buffer
		require.NoError(t, db.Save(&buf))

		loaded := New()
		require.NoError(t, loaded.Load(&buf))
		require.NotNil(t, loaded.Index())
		assert.Equal(t, "FlatIndex", loaded.Index().Name())

		before, err := db.Search([]float32{1, 2}, 2, nil)
		require.NoError(t, err)
		after, err := loaded.Search([]float32{1, 2}, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("SaveLoad_WithIVF_RoundTrip", func(t *testing.T) {
		db := New()
		data := testutil.RandomVectors(1000, 32, 42)
		for _, v := range data {
			_, _ = db.AddVector(v)
		}
		db.SetIndex(ivf.New(ivf.Options{NClusters: 16, Dimension: 32, MaxIters: 25, DefaultNProbe: 4}))
		require.NoError(t, db.BuildIndex())

		query := data[7]
		params := ivf.SearchParams{NProbe: 4}
		before, err := db.Search(query, 5, params)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, db.Save(&buf))

		loaded := New()
		require.NoError(t, loaded.Load(&buf))

		// default_n_probe is not persisted; an exact round trip requires
		// the caller to pass the same n_probe explicitly.
		after, err := loaded.Search(query, 5, params)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
