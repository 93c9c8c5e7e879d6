package transaction

import (
	"container/list"
	"sync"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/metrics"
)

// Pool keeps the transactions waiting for the next block in arrival order.
type Pool struct {
	sync.RWMutex

	Pool map[ /* Transaction.GetHash() */ string]Transaction

	hashList *list.List // Transaction.GetHash()
	hashMap  map[ /* Transaction.GetHash() */ string]*list.Element

	limit int
}

func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = common.DefaultTxPoolLimit
	}
	return &Pool{
		Pool:     map[string]Transaction{},
		hashList: list.New(),
		hashMap:  make(map[string]*list.Element),
		limit:    limit,
	}
}

func (tp *Pool) Len() int {
	tp.RLock()
	defer tp.RUnlock()

	return len(tp.Pool)
}

func (tp *Pool) Has(hash string) bool {
	tp.RLock()
	defer tp.RUnlock()

	_, found := tp.Pool[hash]
	return found
}

func (tp *Pool) Get(hash string) (Transaction, bool) {
	tp.RLock()
	defer tp.RUnlock()

	tx, found := tp.Pool[hash]
	return tx, found
}

func (tp *Pool) Add(tx Transaction) error {
	txHash := tx.GetHash()

	tp.Lock()
	defer tp.Unlock()

	if _, found := tp.Pool[txHash]; found {
		metrics.TxPool.AddRejected(metrics.TxPoolDuplicated)
		return errors.TransactionAlreadyExistsInPool
	}
	if len(tp.Pool) >= tp.limit {
		metrics.TxPool.AddRejected(metrics.TxPoolFull)
		return errors.TransactionPoolFull
	}

	tp.Pool[txHash] = tx

	e := tp.hashList.PushBack(txHash)
	tp.hashMap[txHash] = e

	metrics.TxPool.AddSize(1)

	return nil
}

// Submit adds the transaction to the pool; it lets the pool be handed to
// components which only need to push transactions.
func (tp *Pool) Submit(tx Transaction) error {
	return tp.Add(tx)
}

func (tp *Pool) Remove(hashes ...string) {
	if len(hashes) < 1 {
		return
	}

	tp.Lock()
	defer tp.Unlock()

	var num int
	for _, hash := range hashes {
		if _, found := tp.Pool[hash]; found {
			delete(tp.Pool, hash)
			if e, ok := tp.hashMap[hash]; ok {
				tp.hashList.Remove(e)
				delete(tp.hashMap, hash)
			}
			num++
		}
	}

	metrics.TxPool.AddSize(-num)
}

// AvailableTransactions returns up to `transactionLimit` hashes, older
// first.
func (tp *Pool) AvailableTransactions(transactionLimit int) []string {
	if transactionLimit < 1 {
		return nil
	}

	tp.RLock()
	defer tp.RUnlock()

	var ret []string
	var cnt int
	for e := tp.hashList.Front(); e != nil; e = e.Next() {
		if cnt >= transactionLimit {
			return ret
		}
		hash, ok := e.Value.(string)
		if ok {
			ret = append(ret, hash)
			cnt++
		}
	}

	return ret
}

// Pop removes and returns up to `transactionLimit` transactions, older
// first.
func (tp *Pool) Pop(transactionLimit int) (txs []Transaction) {
	hashes := tp.AvailableTransactions(transactionLimit)
	for _, hash := range hashes {
		if tx, found := tp.Get(hash); found {
			txs = append(txs, tx)
		}
	}
	tp.Remove(hashes...)

	return
}
