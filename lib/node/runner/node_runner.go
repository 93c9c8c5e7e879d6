package runner

import (
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/offchain"
	"boscoin.io/rankchoice/lib/runtime"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
)

// NodeRunner is the single node block producer. Every `BlockTime` it takes
// the oldest transactions from the pool and executes them as the next
// block; a block is produced even when the pool is empty.
type NodeRunner struct {
	sync.Mutex

	Conf common.Config

	storage         *storage.LevelDBBackend
	TransactionPool *transaction.Pool
	executor        *runtime.Executor
	reconciler      *offchain.Reconciler

	log logging.Logger

	stop chan struct{}
	done chan struct{}
}

func NewNodeRunner(
	st *storage.LevelDBBackend,
	keystore offchain.Keystore,
	conf common.Config,
) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		Conf:            conf,
		storage:         st,
		TransactionPool: transaction.NewPool(conf.TxPoolLimit),
		executor:        runtime.NewExecutor(st, conf),
		log:             log.New(logging.Ctx{"network-id": string(conf.NetworkID)}),
	}

	nr.reconciler = offchain.NewReconciler(conf, keystore, nr.TransactionPool)

	var height uint64
	if height, err = block.GetLatestHeight(st); err != nil {
		return
	}
	nr.log.Debug("latest block found", "height", height)

	return
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) Executor() *runtime.Executor {
	return nr.executor
}

func (nr *NodeRunner) Reconciler() *offchain.Reconciler {
	return nr.reconciler
}

func (nr *NodeRunner) Log() logging.Logger {
	return nr.log
}

// ProduceBlock executes the next block from the pool.
func (nr *NodeRunner) ProduceBlock() (b block.Block, err error) {
	txs := nr.TransactionPool.Pop(nr.Conf.TxsLimit)

	var receipts []block.Receipt
	if b, receipts, err = nr.executor.ExecuteBlock(txs); err != nil {
		nr.log.Error("failed to produce block", "error", err)
		return
	}

	var failed int
	for _, receipt := range receipts {
		if receipt.Failed() {
			failed++
		}
	}
	nr.log.Debug("block produced", "height", b.Height, "txs", len(receipts), "failed", failed)

	return
}

func (nr *NodeRunner) Start() (err error) {
	nr.Lock()
	defer nr.Unlock()

	if nr.stop != nil {
		return
	}

	nr.reconciler.Start(offchain.DefaultQueueSize)

	nr.stop = make(chan struct{})
	nr.done = make(chan struct{})
	go nr.produceBlocks(nr.stop, nr.done)

	nr.log.Debug("NodeRunner started", "block-time", nr.Conf.BlockTime)

	return
}

func (nr *NodeRunner) produceBlocks(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(nr.Conf.BlockTime)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			nr.ProduceBlock()
		}
	}
}

// Done returns a channel closed once the running block loop exits. It is nil
// before `Start()`.
func (nr *NodeRunner) Done() <-chan struct{} {
	nr.Lock()
	defer nr.Unlock()

	return nr.done
}

func (nr *NodeRunner) Stop() {
	nr.Lock()
	defer nr.Unlock()

	if nr.stop == nil {
		return
	}

	close(nr.stop)
	<-nr.done
	nr.stop = nil

	nr.reconciler.Stop()

	nr.log.Debug("NodeRunner stopped")
}
