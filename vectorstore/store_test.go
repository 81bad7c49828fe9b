package vectorstore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("Append", func(t *testing.T) {
		s := New()

		id, err := s.Append([]float32{1, 2, 3})
		require.NoError(t, err)
		assert.EqualValues(t, 0, id)
		assert.Equal(t, 3, s.Dimension())

		id, err = s.Append([]float32{4, 5, 6})
		require.NoError(t, err)
		assert.EqualValues(t, 1, id)

		_, err = s.Append([]float32{1, 2})
		assert.Error(t, err)
		assert.IsType(t, &ErrDimensionMismatch{}, err)
	})

	t.Run("AppendBulk", func(t *testing.T) {
		s := New()

		err := s.AppendBulk([]float32{1, 2, 3, 4}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 2, s.Dimension())

		v, err := s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, []float32{3, 4}, v)
	})

	t.Run("Get_OutOfRange", func(t *testing.T) {
		s := New()
		_, _ = s.Append([]float32{1, 2})

		_, err := s.Get(5)
		assert.Error(t, err)
		assert.IsType(t, &ErrOutOfRange{}, err)
	})

	t.Run("SaveLoad_RoundTrip", func(t *testing.T) {
		s := New()
		_, _ = s.Append([]float32{1, 2})
		_, _ = s.Append([]float32{3, 4})
		_, _ = s.Append([]float32{5, 6})

		var buf bytes.Buffer
		require.NoError(t, s.Save(&buf))

		loaded := New()
		require.NoError(t, loaded.Load(&buf))

		assert.Equal(t, s.Dimension(), loaded.Dimension())
		assert.Equal(t, s.Len(), loaded.Len())
		assert.Equal(t, s.All(), loaded.All())
	})

	t.Run("SaveLoad_Empty", func(t *testing.T) {
		s := New()

		var buf bytes.Buffer
		require.NoError(t, s.Save(&buf))
		assert.Equal(t, 8, buf.Len()) // just N:i32, D:i32

		loaded := New()
		require.NoError(t, loaded.Load(&buf))
		assert.Equal(t, 0, loaded.Len())
	})
}
