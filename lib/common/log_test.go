package common

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/errors"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("module", "test")
	SetLogging(logger, logging.LvlDebug, logging.StreamHandler(&buf, JSONFormat()))

	var nilErr *errors.Error
	logger.Info(
		"poll finalized",
		"poll", 3,
		"elapsed", 2*time.Second,
		"error", errors.NoSuchPoll,
		"nil", nilErr,
	)

	line := buf.Bytes()
	require.Equal(t, byte('\n'), line[len(line)-1])
	require.Equal(t, 1, bytes.Count(line, []byte("\n")))

	var props map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &props))
	require.Equal(t, "poll finalized", props["msg"])
	require.Equal(t, "info", props["lvl"])
	require.Equal(t, "test", props["module"])
	require.Equal(t, float64(3), props["poll"])
	require.Equal(t, "2s", props["elapsed"])
	require.Nil(t, props["nil"])
	require.NotContains(t, props, logFormatErrorKey)

	_, err := ParseISO8601(props["t"].(string))
	require.NoError(t, err)

	e, ok := props["error"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(errors.NoSuchPoll.Code), e["code"])
}
