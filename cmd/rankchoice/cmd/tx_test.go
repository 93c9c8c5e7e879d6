package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/network/api"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

func TestParseChoices(t *testing.T) {
	choices, err := parseChoices("4, 1,2,")
	require.NoError(t, err)
	require.Equal(t, poll.Choices{4, 1, 2}, choices)

	_, err = parseChoices("1,256")
	require.Error(t, err)

	_, err = parseChoices("1,a")
	require.Error(t, err)
}

func TestTxOperationBodies(t *testing.T) {
	require.Equal(t, 5, len(txOperations))

	body, err := txOperations[0].body([]string{"4", "blob"})
	require.NoError(t, err)
	require.Equal(t, operation.NewCreatePoll(4, []byte("blob")), body)

	_, err = txOperations[0].body([]string{"300"})
	require.Error(t, err)

	body, err = txOperations[1].body([]string{"1", "4,1,2"})
	require.NoError(t, err)
	require.Equal(t, operation.NewCastVote(1, poll.Choices{4, 1, 2}), body)

	body, err = txOperations[2].body([]string{"7"})
	require.NoError(t, err)
	require.Equal(t, operation.NewFinalizePoll(7), body)

	body, err = txOperations[3].body([]string{"42"})
	require.NoError(t, err)
	require.Equal(t, operation.NewUpdateLatestValue(42), body)

	body, err = txOperations[4].body(nil)
	require.NoError(t, err)
	require.Equal(t, operation.IncrementLatestValue{}, body)
}

func TestRunTxDryRun(t *testing.T) {
	kp := keypair.Random()
	flagTxNetworkID = "rankchoice-test-network"
	flagTxSecretSeed = kp.Seed()
	flagTxSequenceID = 3
	flagTxDryRun = true
	flagTxFormat = "json"

	var b bytes.Buffer
	require.NoError(t, runTx(operation.NewCreatePoll(4, []byte("blob")), &b))

	var tx transaction.Transaction
	require.NoError(t, json.Unmarshal(b.Bytes(), &tx))
	require.Equal(t, kp.Address(), tx.Source())
	require.Equal(t, uint64(3), tx.B.SequenceID)
	require.NoError(t, tx.IsWellFormed(common.NewConfig([]byte(flagTxNetworkID))))

	flagTxSecretSeed = kp.Address()
	require.Error(t, runTx(operation.NewCreatePoll(4, nil), &b))

	flagTxSecretSeed = kp.Seed()
	flagTxNetworkID = ""
	require.Error(t, runTx(operation.NewCreatePoll(4, nil), &b))
}

func TestRunTxSubmit(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	conf := common.NewConfig([]byte("rankchoice-test-network"))
	pool := transaction.NewPool(conf.TxPoolLimit)
	apiHandler, err := api.NewNetworkHandlerAPI(st, pool, conf, resource.APIPrefix)
	require.NoError(t, err)

	ts := httptest.NewServer(apiHandler.NewRouter())
	defer ts.Close()

	kp := keypair.Random()
	flagTxEndpoint = ts.URL
	flagTxNetworkID = string(conf.NetworkID)
	flagTxSecretSeed = kp.Seed()
	flagTxSequenceID = 0
	flagTxDryRun = false
	flagTxFormat = "json"

	var b bytes.Buffer
	require.NoError(t, runTx(operation.IncrementLatestValue{}, &b))

	var posted map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &posted))
	require.Equal(t, "submitted", posted["status"])
	require.Equal(t, kp.Address(), posted["source"])
	require.Equal(t, 1, pool.Len())

	// the same command again is another transaction
	b.Reset()
	require.NoError(t, runTx(operation.IncrementLatestValue{}, &b))
	var again map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &again))
	require.NotEqual(t, posted["hash"], again["hash"])
	require.Equal(t, 2, pool.Len())

	// submitted with another network id, the signature does not match
	flagTxNetworkID = "another-network"
	require.Error(t, runTx(operation.IncrementLatestValue{}, &b))
	require.Equal(t, 2, pool.Len())
}

func TestTxSequenceID(t *testing.T) {
	defer func() { flagTxSequenceID = 0 }()

	flagTxSequenceID = 7
	require.Equal(t, uint64(7), txSequenceID())

	flagTxSequenceID = 0
	first := txSequenceID()
	require.NotEqual(t, uint64(0), first)
	time.Sleep(time.Millisecond)
	require.True(t, txSequenceID() > first)
}
