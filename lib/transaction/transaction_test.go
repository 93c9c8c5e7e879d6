package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

var networkID = []byte("rankchoice-test-network")

func TestNewTransaction(t *testing.T) {
	kp := keypair.Random()

	_, err := NewTransaction(kp.Address(), 0)
	require.Equal(t, errors.TransactionEmptyOperations, err)

	op := operation.MustNewOperation(operation.NewCreatePoll(4, []byte("blob")))
	tx, err := NewTransaction(kp.Address(), 1, op)
	require.NoError(t, err)
	require.Equal(t, "transaction", tx.GetType())
	require.Equal(t, common.TransactionVersionV1, tx.H.Version)
	require.Equal(t, kp.Address(), tx.Source())
	require.Equal(t, tx.B.MakeHashString(), tx.GetHash())
	require.Empty(t, tx.H.Signature)
}

func TestTransactionIsWellFormed(t *testing.T) {
	conf := common.NewConfig(networkID)

	_, tx := TestMakeTransaction(networkID, 3)
	require.NoError(t, tx.IsWellFormed(conf))

	// other network
	require.Equal(t, errors.SignatureVerificationFailed, tx.IsWellFormed(common.NewConfig([]byte("showme"))))
}

func TestTransactionIsWellFormedOrder(t *testing.T) {
	conf := common.NewConfig(networkID)
	kp := keypair.Random()

	{ // empty operations come first
		tx := Transaction{B: Body{Source: "findme"}}
		require.Equal(t, errors.TransactionEmptyOperations, tx.IsWellFormed(conf))
	}

	{ // over the operations limit
		conf := common.NewConfig(networkID)
		conf.OpsLimit = 2
		_, tx := TestMakeTransaction(networkID, 3)
		require.Equal(t, errors.TransactionHasOverMaxOps, tx.IsWellFormed(conf))
	}

	{ // seed is not a public address
		op := operation.MustNewOperation(operation.NewFinalizePoll(1))
		tx, _ := NewTransaction(kp.Seed(), 0, op)
		require.Equal(t, errors.BadPublicAddress, tx.IsWellFormed(conf))
	}

	{ // body modified after signing
		tx := TestMakeTransactionWithKeypair(
			networkID, kp, 0,
			operation.MustNewOperation(operation.NewCastVote(1, poll.Choices{1})),
		)
		tx.B.SequenceID = 9
		require.Equal(t, errors.InvalidTransactionHash, tx.IsWellFormed(conf))
	}

	{ // signed by someone else
		op := operation.MustNewOperation(operation.NewFinalizePoll(1))
		tx, _ := NewTransaction(kp.Address(), 0, op)
		require.NoError(t, tx.Sign(keypair.Random(), networkID))
		require.Equal(t, errors.SignatureVerificationFailed, tx.IsWellFormed(conf))
	}
}

func TestTransactionJSON(t *testing.T) {
	conf := common.NewConfig(networkID)
	kp := keypair.Random()

	tx := TestMakeTransactionWithKeypair(
		networkID, kp, 3,
		operation.MustNewOperation(operation.NewCreatePoll(4, []byte("blob"))),
		operation.MustNewOperation(operation.NewCastVote(1, poll.Choices{4, 1, 2})),
		operation.MustNewOperation(operation.IncrementLatestValue{}),
	)

	b, err := tx.Serialize()
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, tx.GetHash(), decoded.GetHash())
	require.Equal(t, tx.B.MakeHashString(), decoded.B.MakeHashString())
	require.NoError(t, decoded.IsWellFormed(conf))
}
