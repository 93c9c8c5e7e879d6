package offchain

import (
	"sync"
	"time"

	"github.com/google/uuid"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/observer"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/metrics"
	"boscoin.io/rankchoice/lib/transaction"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

// DefaultQueueSize is how many committed heights may wait for the
// reconciler before new ones are dropped.
const DefaultQueueSize int = 100

// Submitter takes a signed transaction into the ordinary submission path;
// `*transaction.Pool` satisfies it.
type Submitter interface {
	Submit(transaction.Transaction) error
}

// DeriveFunc computes the value reported for a block height.
type DeriveFunc func(height uint64) uint32

// DefaultDerive uses the low 32 bits of the height.
func DefaultDerive(height uint64) uint32 {
	return uint32(height)
}

// Reconciler runs once per committed block, outside of block execution. It
// never writes the ledger storage; its only effect is a signed
// update-latest-value transaction handed to the submitter.
type Reconciler struct {
	sync.Mutex

	conf      common.Config
	keystore  Keystore
	submitter Submitter
	derive    DeriveFunc
	log       logging.Logger

	heights chan uint64
	stop    chan struct{}
	done    chan struct{}
	onBlock func(...interface{})
}

func NewReconciler(conf common.Config, keystore Keystore, submitter Submitter) *Reconciler {
	return &Reconciler{
		conf:      conf,
		keystore:  keystore,
		submitter: submitter,
		derive:    DefaultDerive,
		log:       log.New("network-id", string(conf.NetworkID)),
	}
}

func (r *Reconciler) SetDerive(f DeriveFunc) *Reconciler {
	r.derive = f
	return r
}

// Run performs one reconciliation cycle for `height`. The returned error is
// for the caller's information only; nothing is retried.
func (r *Reconciler) Run(height uint64) (err error) {
	begin := time.Now()
	defer metrics.Offchain.ObserveDurationSeconds(begin)

	logger := r.log.New("cycle", uuid.New().String(), "height", height)

	value := r.derive(height)

	signer, found := r.keystore.Signer(KeyPurpose)
	if !found {
		err = errors.NoLocalAcctForSigning
		logger.Error("no local account is available for signing", "error", err)
		metrics.Offchain.AddCycle(metrics.OffchainNoSigner)
		return
	}

	var tx transaction.Transaction
	if tx, err = r.makeTransaction(signer.Address(), height, value); err == nil {
		err = tx.Sign(signer, r.conf.NetworkID)
	}
	if err == nil {
		err = r.submitter.Submit(tx)
	}
	if err != nil {
		logger.Error("failed to submit signed transaction", "error", err)
		err = errors.OffchainSignedTxError.Clone().SetData("error", err.Error())
		metrics.Offchain.AddCycle(metrics.OffchainSubmitFailed)
		return
	}

	logger.Debug("signed transaction submitted", "transaction", tx.GetHash(), "value", value)
	metrics.Offchain.AddCycle(metrics.OffchainSubmitted)

	return
}

func (r *Reconciler) makeTransaction(source string, height uint64, value uint32) (transaction.Transaction, error) {
	op, err := operation.NewOperation(operation.NewUpdateLatestValue(value))
	if err != nil {
		return transaction.Transaction{}, err
	}

	return transaction.NewTransaction(source, height, op)
}

// Start subscribes to committed blocks and runs the cycles on its own
// goroutine. Heights which arrive while `queueSize` heights are already
// waiting are dropped.
func (r *Reconciler) Start(queueSize int) {
	r.Lock()
	defer r.Unlock()

	if r.heights != nil {
		return
	}

	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}

	r.heights = make(chan uint64, queueSize)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	heights := r.heights
	r.onBlock = func(args ...interface{}) {
		b := args[0].(block.Block)
		select {
		case heights <- b.Height:
		default:
			r.log.Warn("reconciler queue is full; height dropped", "height", b.Height)
		}
	}
	observer.BlockObserver.On(observer.EventBlockCommitted, r.onBlock)

	go r.loop(r.heights, r.stop, r.done)

	r.log.Debug("reconciler started", "queue-size", queueSize)
}

func (r *Reconciler) loop(heights chan uint64, stop, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case height := <-heights:
			r.Run(height)
		}
	}
}

// Stop unsubscribes and waits for the running cycle to finish. Queued
// heights are discarded.
func (r *Reconciler) Stop() {
	r.Lock()
	defer r.Unlock()

	if r.heights == nil {
		return
	}

	observer.BlockObserver.Off(observer.EventBlockCommitted, r.onBlock)
	close(r.stop)
	<-r.done

	r.heights = nil
	r.onBlock = nil

	r.log.Debug("reconciler stopped")
}
