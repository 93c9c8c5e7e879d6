package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	e := NoSuchPoll
	e0 := NoSuchPoll.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.Code = 200
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsIs(t *testing.T) {
	cloned := AlreadyVoted.Clone().SetData("poll_id", 1)

	require.True(t, AlreadyVoted.Is(cloned))
	require.True(t, AlreadyVoted.Is(AlreadyVoted))
	require.False(t, AlreadyVoted.Is(PollNotActive))
	require.False(t, AlreadyVoted.Is(fmt.Errorf("already voted")))
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(PollNotActive)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(PollNotActive)
		require.NoError(t, err)

		e := PollNotActive.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	all := []*Error{
		StorageCoreError, StorageRecordAlreadyExists, StorageRecordDoesNotExist,
		StorageInvalidConfig, TransactionEmptyOperations, TransactionHasOverMaxOps,
		BadPublicAddress, InvalidTransactionHash, SignatureVerificationFailed,
		UnknownOperationType, InvalidOperation, TransactionAlreadyExistsInPool,
		TransactionPoolFull, TransactionNotFound, BlockNotFound, InvalidMessage,
		TransactionAlreadyExecuted,
		NoSuchPoll, PollNotActive, AlreadyVoted, NotAuthorized,
		PollAlreadyFinalized, NoneValue, StorageOverflow,
		NoLocalAcctForSigning, OffchainSignedTxError,
	}

	codes := map[uint]string{}
	for _, e := range all {
		found, ok := codes[e.Code]
		require.False(t, ok, "code %d used by %q and %q", e.Code, found, e.Message)
		codes[e.Code] = e.Message
	}
}
