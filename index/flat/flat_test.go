package flat

import (
	"bytes"
	"testing"

	"github.com/LuciAkirami/vegamdb/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat(t *testing.T) {
	t.Run("AlwaysTrained", func(t *testing.T) {
		f := New()
		assert.True(t, f.IsTrained())
		require.NoError(t, f.Build(nil, 0, 0))
		assert.True(t, f.IsTrained())
	})

	t.Run("Search_TinyExample", func(t *testing.T) {
		f := New()
		data := []float32{
			0, 0,
			3, 0,
			0, 4,
			6, 8,
		}

		results, err := f.Search(data, []float32{0, 0}, 3, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, uint32(0), results[0].ID)
		assert.Equal(t, float32(0), results[0].Distance)
		assert.Equal(t, uint32(1), results[1].ID)
		assert.Equal(t, float32(9), results[1].Distance)
		assert.Equal(t, uint32(2), results[2].ID)
		assert.Equal(t, float32(16), results[2].Distance)
	})

	t.Run("Search_KGreaterThanN", func(t *testing.T) {
		f := New()
		data := []float32{1, 1, 2, 2}

		results, err := f.Search(data, []float32{0, 0}, 10, nil)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("Search_InvalidK", func(t *testing.T) {
		f := New()
		_, err := f.Search([]float32{1, 2}, []float32{1, 2}, 0, nil)
		assert.Error(t, err)
		assert.IsType(t, &index.ErrInvalidParameter{}, err)
	})

	t.Run("SaveLoad_NoOp", func(t *testing.T) {
		f := New()
		var buf bytes.Buffer
		require.NoError(t, f.Save(&buf))
		assert.Equal(t, 0, buf.Len())
		require.NoError(t, f.Load(&buf, 2))
	})
}
