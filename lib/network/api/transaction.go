package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/network/httputils"
	"boscoin.io/rankchoice/lib/transaction"
)

// MaxTransactionBodySize limits the request body of a posted transaction.
const MaxTransactionBodySize int64 = 1 << 20

// PostTransactionsHandler checks the posted transaction and puts it into
// the pool. The transaction is executed with a later block; its receipt
// is found by hash.
func (api NetworkHandlerAPI) PostTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}

	var tx transaction.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		if e, ok := err.(*errors.Error); ok {
			httputils.WriteJSONError(w, e)
			return
		}
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}

	if err = tx.IsWellFormed(api.conf); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var exists bool
	if exists, err = block.ExistsReceipt(api.storage, tx.GetHash()); err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if exists {
		httputils.WriteJSONError(w, errors.TransactionAlreadyExecuted)
		return
	}

	if err = api.pool.Add(tx); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	log.Debug("transaction accepted", "transaction", tx.GetHash(), "source", tx.Source())

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewTransactionPost(tx.GetHash(), tx.Source()))
}

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	receipt, err := block.GetReceipt(api.storage, hash)
	if err != nil {
		if err == errors.TransactionNotFound && api.pool.Has(hash) {
			tx, _ := api.pool.Get(hash)
			httputils.MustWriteJSON(w, http.StatusOK, resource.NewTransactionPost(hash, tx.Source()))
			return
		}
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}
