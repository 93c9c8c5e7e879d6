package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultEncodes(t *testing.T) {
	v := map[string]interface{}{"id": 1, "active": true}

	{
		var b bytes.Buffer
		require.NoError(t, DefaultEncodes["json"](v, &b))
		require.Equal(t, "{\"active\":true,\"id\":1}\n", b.String())
	}

	{
		var b bytes.Buffer
		require.NoError(t, DefaultEncodes["yaml"](v, &b))
		require.Equal(t, "active: true\nid: 1\n", b.String())
	}

	{
		var b bytes.Buffer
		require.NoError(t, DefaultEncodes["prettyjson"](v, &b))
		require.Contains(t, b.String(), "\n  \"id\": 1")
	}
}

func TestInterruptCanceled(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)

	err := Interrupt(cancel)
	require.EqualError(t, err, "canceled")
}
