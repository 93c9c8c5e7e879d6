package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

// Body is what the hash and the signature cover. `Source` is the caller
// identity every operation runs with.
type Body struct {
	Source     string                `json:"source"`
	SequenceID uint64                `json:"sequence_id"`
	Operations []operation.Operation `json:"operations"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

func NewTransaction(source string, sequenceID uint64, ops ...operation.Operation) (tx Transaction, err error) {
	if len(ops) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	txBody := Body{
		Source:     source,
		SequenceID: sequenceID,
		Operations: ops,
	}

	tx = Transaction{
		T: "transaction",
		H: Header{
			Version: common.TransactionVersionV1,
			Created: common.NowISO8601(),
			Hash:    txBody.MakeHashString(),
		},
		B: txBody,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckOperationsCount,
	CheckSource,
	CheckOperations,
	CheckHash,
	CheckVerifySignature,
}

func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Config:         conf,
		Transaction:    tx,
	}
	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		return
	}

	return
}

func (tx Transaction) GetType() string {
	return tx.T
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

// Sign sets the hash of the body and signs it with `signer`. The signer
// must be the source of the transaction for `IsWellFormed` to pass.
func (tx *Transaction) Sign(signer keypair.Signer, networkID []byte) (err error) {
	tx.H.Hash = tx.B.MakeHashString()

	var signature []byte
	if signature, err = keypair.MakeSignature(signer, networkID, tx.H.Hash); err != nil {
		return
	}

	tx.H.Signature = base58.Encode(signature)

	return
}
