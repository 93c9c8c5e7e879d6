package transaction

import (
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

// TestMakeTransaction makes a signed transaction from a new keypair with
// `n` update-latest-value operations.
func TestMakeTransaction(networkID []byte, n int) (kp *keypair.Full, tx Transaction) {
	kp = keypair.Random()

	var ops []operation.Operation
	for i := 0; i < n; i++ {
		ops = append(ops, operation.MustNewOperation(operation.NewUpdateLatestValue(uint32(i))))
	}

	tx = TestMakeTransactionWithKeypair(networkID, kp, 0, ops...)

	return
}

func TestMakeTransactionWithKeypair(networkID []byte, kp *keypair.Full, sequenceID uint64, ops ...operation.Operation) (tx Transaction) {
	tx, _ = NewTransaction(kp.Address(), sequenceID, ops...)
	if err := tx.Sign(kp, networkID); err != nil {
		panic(err)
	}

	return
}
