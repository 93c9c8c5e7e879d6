package offchain

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/common/observer"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/runtime"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

var networkID = []byte("rankchoice-test-network")

type testSubmitter struct {
	sync.Mutex
	txs []transaction.Transaction
	err error
	ch  chan transaction.Transaction
}

func (s *testSubmitter) Submit(tx transaction.Transaction) error {
	s.Lock()
	defer s.Unlock()

	if s.err != nil {
		return s.err
	}
	s.txs = append(s.txs, tx)
	if s.ch != nil {
		s.ch <- tx
	}

	return nil
}

func TestReconcilerRun(t *testing.T) {
	conf := common.NewConfig(networkID)
	kp := keypair.Random()

	keystore := NewMemoryKeystore()
	keystore.Add(KeyPurpose, kp)

	submitter := &testSubmitter{}
	r := NewReconciler(conf, keystore, submitter)

	require.NoError(t, r.Run(7))
	require.Equal(t, 1, len(submitter.txs))

	tx := submitter.txs[0]
	require.NoError(t, tx.IsWellFormed(conf))
	require.Equal(t, kp.Address(), tx.Source())
	require.Equal(t, uint64(7), tx.B.SequenceID)
	require.Equal(t, 1, len(tx.B.Operations))
	require.Equal(t, operation.TypeUpdateLatestValue, tx.B.Operations[0].H.Type)
	require.Equal(t, uint32(7), tx.B.Operations[0].B.(operation.UpdateLatestValue).Value)
}

func TestReconcilerDerive(t *testing.T) {
	keystore := NewMemoryKeystore()
	keystore.Add(KeyPurpose, keypair.Random())

	submitter := &testSubmitter{}
	r := NewReconciler(common.NewConfig(networkID), keystore, submitter)
	r.SetDerive(func(height uint64) uint32 { return uint32(height * 10) })

	require.NoError(t, r.Run(3))
	require.Equal(t, uint32(30), submitter.txs[0].B.Operations[0].B.(operation.UpdateLatestValue).Value)

	// heights over 32 bits keep the low bits
	r.SetDerive(DefaultDerive)
	require.NoError(t, r.Run(1<<32+5))
	require.Equal(t, uint32(5), submitter.txs[1].B.Operations[0].B.(operation.UpdateLatestValue).Value)
}

func TestReconcilerNoSigner(t *testing.T) {
	keystore := NewMemoryKeystore()
	keystore.Add("showme", keypair.Random())

	submitter := &testSubmitter{}
	r := NewReconciler(common.NewConfig(networkID), keystore, submitter)

	require.Equal(t, errors.NoLocalAcctForSigning, r.Run(1))
	require.Empty(t, submitter.txs)
}

func TestReconcilerSubmitFailed(t *testing.T) {
	keystore := NewMemoryKeystore()
	keystore.Add(KeyPurpose, keypair.Random())

	submitter := &testSubmitter{err: fmt.Errorf("killme")}
	r := NewReconciler(common.NewConfig(networkID), keystore, submitter)

	err := r.Run(1)
	require.True(t, errors.OffchainSignedTxError.Is(err))
	require.Equal(t, "killme", err.(*errors.Error).Data["error"])

	// the next cycle is not affected
	submitter.err = nil
	require.NoError(t, r.Run(2))
	require.Equal(t, 1, len(submitter.txs))
}

func TestReconcilerStartStop(t *testing.T) {
	keystore := NewMemoryKeystore()
	keystore.Add(KeyPurpose, keypair.Random())

	submitter := &testSubmitter{ch: make(chan transaction.Transaction, 10)}
	r := NewReconciler(common.NewConfig(networkID), keystore, submitter)
	r.Start(10)
	r.Start(10) // already started

	for height := uint64(1); height <= 3; height++ {
		observer.BlockObserver.Trigger(observer.EventBlockCommitted, block.Block{Header: block.Header{Height: height}})
	}

	for height := uint64(1); height <= 3; height++ {
		select {
		case tx := <-submitter.ch:
			require.Equal(t, height, tx.B.SequenceID)
		case <-time.After(5 * time.Second):
			require.Fail(t, "transaction was not submitted", "height", height)
		}
	}

	r.Stop()
	r.Stop()

	observer.BlockObserver.Trigger(observer.EventBlockCommitted, block.Block{Header: block.Header{Height: 4}})
	select {
	case <-submitter.ch:
		require.Fail(t, "stopped reconciler submitted a transaction")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReconcilerWithExecutor(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	conf := common.NewConfig(networkID)
	executor := runtime.NewExecutor(st, conf)
	pool := transaction.NewPool(conf.TxPoolLimit)

	keystore := NewMemoryKeystore()
	keystore.Add(KeyPurpose, keypair.Random())
	r := NewReconciler(conf, keystore, pool)

	b, _, err := executor.ExecuteBlock(nil)
	require.NoError(t, err)

	_, err = poll.GetLatestValue(st)
	require.Equal(t, errors.NoneValue, err)

	// the cycle reads nothing from the ledger and writes nothing to it
	require.NoError(t, r.Run(b.Height))
	_, err = poll.GetLatestValue(st)
	require.Equal(t, errors.NoneValue, err)
	require.Equal(t, 1, pool.Len())

	_, receipts, err := executor.ExecuteBlock(pool.Pop(conf.TxsLimit))
	require.NoError(t, err)
	require.Equal(t, 1, len(receipts))
	require.False(t, receipts[0].Failed())

	v, err := poll.GetLatestValue(st)
	require.NoError(t, err)
	require.Equal(t, uint32(b.Height), v)
}
