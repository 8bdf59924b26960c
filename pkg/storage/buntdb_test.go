package storage

import (
	"testing"

	"github.com/raykavin/ratebot/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestBuntStorage(t *testing.T) {
	store, err := FromMemory()
	require.NoError(t, err)
	defer store.Close()

	t.Run("empty store loads absent readings", func(t *testing.T) {
		readings, err := store.Load()
		require.NoError(t, err)
		require.False(t, readings.Primary.Valid)
		require.False(t, readings.Conversion.Valid)
		require.False(t, readings.Secondary.Valid)
	})

	t.Run("save and load keep absent values absent", func(t *testing.T) {
		saved := core.Readings{
			Primary:    core.PriceFromFloat(5.123),
			Conversion: core.PriceFromFloat(90.5),
			Secondary:  core.NoPrice,
		}
		require.NoError(t, store.Save(saved))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.True(t, loaded.Primary.Decimal.Equal(saved.Primary.Decimal))
		require.True(t, loaded.Conversion.Decimal.Equal(saved.Conversion.Decimal))
		require.False(t, loaded.Secondary.Valid)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(core.Readings{}))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.False(t, loaded.Primary.Valid)
	})
}

func TestBuntStorage_Closed(t *testing.T) {
	store, err := FromMemory()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Load()
	require.Error(t, err)
	require.Error(t, store.Save(core.Readings{}))
}
