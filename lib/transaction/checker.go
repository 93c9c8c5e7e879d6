package transaction

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Config      common.Config
	Transaction Transaction
}

func CheckOperationsCount(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if len(checker.Transaction.B.Operations) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	limit := checker.Config.OpsLimit
	if limit < 1 {
		limit = common.MaxOperationsInTransaction
	}
	if len(checker.Transaction.B.Operations) > limit {
		err = errors.TransactionHasOverMaxOps
		return
	}

	return
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if !keypair.IsValidAddress(checker.Transaction.B.Source) {
		err = errors.BadPublicAddress
		return
	}

	return
}

func CheckOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	for _, op := range checker.Transaction.B.Operations {
		if err = op.IsWellFormed(checker.Config); err != nil {
			return
		}
	}

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Transaction.B.MakeHashString() != checker.Transaction.H.Hash {
		err = errors.InvalidTransactionHash
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	err = keypair.VerifySignature(
		checker.Transaction.B.Source,
		checker.Config.NetworkID,
		checker.Transaction.H.Hash,
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		err = errors.SignatureVerificationFailed
		return
	}

	return
}
