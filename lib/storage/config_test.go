package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/errors"
)

func TestNewConfigFromString(t *testing.T) {
	{
		config, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, "memory", config.Scheme)
		require.Equal(t, "memory://", config.String())
	}

	{
		config, err := NewConfigFromString("file:///tmp/rankchoice/db")
		require.NoError(t, err)
		require.Equal(t, "file", config.Scheme)
		require.Equal(t, "/tmp/rankchoice/db", config.Path)
	}

	{
		_, err := NewConfigFromString("file://")
		require.True(t, errors.StorageInvalidConfig.Is(err))
	}

	{
		_, err := NewConfigFromString("redis://localhost:6379")
		require.True(t, errors.StorageInvalidConfig.Is(err))
	}
}
