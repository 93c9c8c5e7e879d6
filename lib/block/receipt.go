package block

import (
	"encoding/json"
	"fmt"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/storage"
)

type ReceiptStatus string

const (
	ReceiptSuccess ReceiptStatus = "success"
	ReceiptFailed  ReceiptStatus = "failed"
)

// Receipt is the outcome of one executed transaction. A failed receipt
// means none of the operations of the transaction changed the ledger.
type Receipt struct {
	Hash   string        `json:"hash"`
	Source string        `json:"source"`
	Height uint64        `json:"height"`
	Index  int           `json:"index"`
	Status ReceiptStatus `json:"status"`

	// The error of the first failed operation.
	Error          *errors.Error `json:"error,omitempty"`
	OperationIndex int           `json:"operation_index,omitempty"`
}

func NewReceipt(hash, source string, height uint64, index int) Receipt {
	return Receipt{
		Hash:   hash,
		Source: source,
		Height: height,
		Index:  index,
		Status: ReceiptSuccess,
	}
}

// SetError marks the receipt failed at operation `opIndex`. Errors which
// are not `*errors.Error` are kept by their message.
func (r *Receipt) SetError(opIndex int, err error) {
	r.Status = ReceiptFailed
	r.OperationIndex = opIndex

	if e, ok := err.(*errors.Error); ok {
		r.Error = e
	} else {
		r.Error = errors.New(err.Error())
	}
}

func (r Receipt) Failed() bool {
	return r.Status == ReceiptFailed
}

func (r Receipt) String() string {
	encoded, _ := json.MarshalIndent(r, "", "  ")
	return string(encoded)
}

func GetReceiptKey(hash string) string {
	return fmt.Sprintf("%s%s", common.ReceiptPrefixHash, hash)
}

func (r Receipt) Save(st *storage.LevelDBBackend) error {
	return st.New(GetReceiptKey(r.Hash), r)
}

func GetReceipt(st *storage.LevelDBBackend, hash string) (r Receipt, err error) {
	if err = st.Get(GetReceiptKey(hash), &r); err == errors.StorageRecordDoesNotExist {
		err = errors.TransactionNotFound
	}
	return
}

func ExistsReceipt(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}
