package runtime

import (
	"sync"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/observer"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/metrics"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
)

// Executor applies blocks of transactions to the ledger storage one at a
// time. Each transaction runs in its own leveldb transaction: all of its
// operations are committed together, or the first failing operation
// discards them all.
type Executor struct {
	sync.Mutex

	st   *storage.LevelDBBackend
	conf common.Config
}

func NewExecutor(st *storage.LevelDBBackend, conf common.Config) *Executor {
	return &Executor{
		st:   st,
		conf: conf,
	}
}

func (e *Executor) Storage() *storage.LevelDBBackend {
	return e.st
}

// executeTransaction returns a non-nil error only for storage failures; a
// rejected transaction is reported by its receipt.
func (e *Executor) executeTransaction(height uint64, index int, tx transaction.Transaction) (
	receipt block.Receipt,
	recorder *event.Recorder,
	err error,
) {
	receipt = block.NewReceipt(tx.GetHash(), tx.Source(), height, index)

	if wfErr := tx.IsWellFormed(e.conf); wfErr != nil {
		receipt.SetError(-1, wfErr)
		err = receipt.Save(e.st)
		return
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	recorder = event.NewRecorder(ts, height, tx.GetHash())
	state := poll.NewState(ts, recorder)

	for i, op := range tx.B.Operations {
		if opErr := ApplyOperation(state, tx.Source(), op); opErr != nil {
			log.Debug(
				"operation failed",
				"transaction", tx.GetHash(),
				"index", i,
				"type", op.H.Type,
				"error", opErr,
			)
			receipt.SetError(i, opErr)
			recorder = nil
			if err = ts.Discard(); err != nil {
				return
			}
			err = receipt.Save(e.st)
			return
		}
	}

	// the receipt commits with the state changes, so a committed
	// transaction is never executed again.
	if err = receipt.Save(ts); err != nil {
		recorder = nil
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		recorder = nil
		return
	}

	return
}

// ExecuteBlock runs `txs` in order on top of the latest block and saves the
// new block with one receipt per executed transaction. Each receipt is
// saved with its transaction. Transactions which already have a receipt,
// or appear again in `txs`, are skipped. Observers are triggered only after
// everything is committed.
func (e *Executor) ExecuteBlock(txs []transaction.Transaction) (b block.Block, receipts []block.Receipt, err error) {
	e.Lock()
	defer e.Unlock()

	var prev block.Block
	if prev, err = block.GetLatestBlock(e.st); err != nil {
		if err != errors.BlockNotFound {
			return
		}
		prev = block.Block{}
		err = nil
	}
	height := prev.Height + 1

	var hashes []string
	var recorders []*event.Recorder
	seen := map[string]struct{}{}
	for _, tx := range txs {
		if _, found := seen[tx.GetHash()]; found {
			log.Debug("transaction repeated in block; skipped", "transaction", tx.GetHash())
			continue
		}
		seen[tx.GetHash()] = struct{}{}

		var exists bool
		if exists, err = block.ExistsReceipt(e.st, tx.GetHash()); err != nil {
			return
		} else if exists {
			log.Debug("transaction already executed; skipped", "transaction", tx.GetHash())
			continue
		}

		var receipt block.Receipt
		var recorder *event.Recorder
		if receipt, recorder, err = e.executeTransaction(height, len(receipts), tx); err != nil {
			log.Error("failed to execute transaction", "transaction", tx.GetHash(), "error", err)
			return
		}

		hashes = append(hashes, tx.GetHash())
		receipts = append(receipts, receipt)
		if recorder != nil {
			recorders = append(recorders, recorder)
		}
	}

	b = block.NewBlock(prev, hashes, common.NowISO8601())
	if err = e.saveBlock(b); err != nil {
		log.Error("failed to save block", "height", b.Height, "error", err)
		return
	}

	log.Debug("block committed", "height", b.Height, "hash", b.Hash, "txs", len(hashes))

	metrics.Ledger.SetHeight(b.Height)
	for _, receipt := range receipts {
		metrics.Ledger.AddTransaction(receipt.Failed())
	}

	for _, recorder := range recorders {
		countEvents(recorder.Emitted())
		recorder.Notify()
	}
	observer.BlockObserver.Trigger(observer.EventBlockCommitted, b)

	return
}

func (e *Executor) saveBlock(b block.Block) (err error) {
	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	if err = b.Save(ts); err != nil {
		ts.Discard()
		return
	}

	return ts.Commit()
}

func countEvents(events []event.Event) {
	for _, e := range events {
		switch e.Type {
		case event.TypePollCreated:
			metrics.Ledger.Polls.Add(1)
		case event.TypeNewVoteCast:
			metrics.Ledger.Votes.Add(1)
		case event.TypePollFinalized:
			metrics.Ledger.FinalizedPolls.Add(1)
		}
	}
}
