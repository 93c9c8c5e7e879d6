package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cmdcommon "boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/node/runner"
	"boscoin.io/rankchoice/lib/offchain"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/storage"
)

func resetNodeFlags() {
	flagNetworkID = "rankchoice-test-network"
	flagKPSecretSeed = ""
	flagBindURL = "http://127.0.0.1:12345"
	flagStorage = "memory://"
	flagTLSCertFile = ""
	flagTLSKeyFile = ""
	flagBlockTime = "1s"
	flagTxsLimit = "10"
	flagOpsLimit = "5"
	flagTxPoolLimit = "100"
	flagAPICacheSize = "16"
	flagLogLevel = "crit"
	flagLogOutput = ""
	flagHTTPLogOutput = ""
}

func TestParseFlagsNode(t *testing.T) {
	resetNodeFlags()
	signer := keypair.Random()
	flagKPSecretSeed = signer.Seed()

	require.Nil(t, parseFlagsNode())

	require.Equal(t, signer.Address(), kp.Address())
	require.Equal(t, "127.0.0.1:12345", bindURL.Host)
	require.Equal(t, "memory", storageConfig.Scheme)
	require.Equal(t, []byte("rankchoice-test-network"), conf.NetworkID)
	require.Equal(t, time.Second, conf.BlockTime)
	require.Equal(t, 10, conf.TxsLimit)
	require.Equal(t, 5, conf.OpsLimit)
	require.Equal(t, 100, conf.TxPoolLimit)
	require.Equal(t, 16, conf.APICacheSize)

	_, found := newKeystore().Signer(offchain.KeyPurpose)
	require.True(t, found)
}

func TestParseFlagsNodeWithoutSigner(t *testing.T) {
	resetNodeFlags()

	require.Nil(t, parseFlagsNode())
	require.Nil(t, kp)

	_, found := newKeystore().Signer(offchain.KeyPurpose)
	require.False(t, found)
}

func TestParseFlagsNodeInvalid(t *testing.T) {
	cases := []struct {
		flag  string
		apply func()
	}{
		{"--network-id", func() { flagNetworkID = "" }},
		{"--secret-seed", func() { flagKPSecretSeed = "findme" }},
		{"--secret-seed", func() { flagKPSecretSeed = keypair.Random().Address() }},
		{"--bind", func() { flagBindURL = "udp://0.0.0.0:1" }},
		{"--bind", func() { flagBindURL = "https://0.0.0.0:1" }},
		{"--storage", func() { flagStorage = "redis://" }},
		{"--block-time", func() { flagBlockTime = "soon" }},
		{"--block-time", func() { flagBlockTime = "0s" }},
		{"--txs-limit", func() { flagTxsLimit = "0" }},
		{"--ops-limit", func() { flagOpsLimit = "many" }},
		{"--txpool-limit", func() { flagTxPoolLimit = "-1" }},
		{"--api-cache-size", func() { flagAPICacheSize = "" }},
		{"--log-level", func() { flagLogLevel = "loud" }},
	}

	for _, c := range cases {
		resetNodeFlags()
		c.apply()

		err := parseFlagsNode()
		require.NotNil(t, err, c.flag)
		require.Equal(t, c.flag, err.flag)
	}
}

func TestNodeHandler(t *testing.T) {
	resetNodeFlags()
	require.Nil(t, parseFlagsNode())

	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	nr, err := runner.NewNodeRunner(st, newKeystore(), conf)
	require.NoError(t, err)

	httpLogWriter = ioutil.Discard
	handler, err := newHandler(nr)
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	{
		resp, err := http.Get(ts.URL + metricsURLPrefix)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{
		req, err := http.NewRequest("GET", ts.URL+"/api/v1/polls/1", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://example.com")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	}

	{
		resp, err := http.Get(ts.URL + "/api/v1/blocks/latest")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestPrintPoll(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	proposer := keypair.Random().Address()
	voter := keypair.Random().Address()

	s := poll.NewState(st, nil)
	id, err := s.CreatePoll(proposer, 4, []byte("blob"))
	require.NoError(t, err)
	require.NoError(t, s.CastVote(id, voter, poll.Choices{4, 1, 2}))

	{
		var b bytes.Buffer
		require.NoError(t, printPoll(st, id, cmdcommon.DefaultEncodes["json"], &b))

		var v pollView
		require.NoError(t, json.Unmarshal(b.Bytes(), &v))
		require.Equal(t, id, v.ID)
		require.Equal(t, proposer, v.Proposer)
		require.Equal(t, uint8(4), v.NumItems)
		require.Equal(t, "YmxvYg==", v.Content)
		require.True(t, v.Active)
	}

	{
		var b bytes.Buffer
		require.NoError(t, printVotes(st, id, voter, cmdcommon.DefaultEncodes["yaml"], &b))
		require.Contains(t, b.String(), "voter: "+voter)
		require.Contains(t, b.String(), "choices:\n- 4\n- 1\n- 2\n")
	}

	{
		var b bytes.Buffer
		err := printPoll(st, id+1, cmdcommon.DefaultEncodes["json"], &b)
		require.True(t, errors.NoSuchPoll.Is(err))
		require.Equal(t, 0, b.Len())
	}

	{
		var b bytes.Buffer
		err := printVotes(st, id, proposer, cmdcommon.DefaultEncodes["json"], &b)
		require.True(t, errors.StorageRecordDoesNotExist.Is(err))
	}
}

func TestNodeConfigDefaults(t *testing.T) {
	defaults := common.NewConfig(nil)
	require.Equal(t, common.MaxOperationsInTransaction, defaults.OpsLimit)
	require.Equal(t, common.DefaultTxPoolLimit, defaults.TxPoolLimit)
}

func TestVersionFormats(t *testing.T) {
	defer func() { flagVersionFormat = "text" }()

	var buf bytes.Buffer
	require.NoError(t, runVersion(&buf))
	require.Contains(t, buf.String(), "version=")

	buf.Reset()
	flagVersionFormat = "json"
	require.NoError(t, runVersion(&buf))
	var detail map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &detail))
	require.Contains(t, detail, "version")
	require.Contains(t, detail, "git_commit")

	buf.Reset()
	flagVersionFormat = "toml"
	require.Error(t, runVersion(&buf))
}
