package httputils

import (
	"net/http"

	"boscoin.io/rankchoice/lib/errors"
)

var ErrorsToStatus = map[uint]int{
	errors.StorageRecordDoesNotExist.Code:      http.StatusNotFound,
	errors.TransactionEmptyOperations.Code:     http.StatusBadRequest,
	errors.TransactionHasOverMaxOps.Code:       http.StatusBadRequest,
	errors.BadPublicAddress.Code:               http.StatusBadRequest,
	errors.InvalidTransactionHash.Code:         http.StatusBadRequest,
	errors.SignatureVerificationFailed.Code:    http.StatusBadRequest,
	errors.UnknownOperationType.Code:           http.StatusBadRequest,
	errors.InvalidOperation.Code:               http.StatusBadRequest,
	errors.TransactionAlreadyExistsInPool.Code: http.StatusBadRequest,
	errors.TransactionPoolFull.Code:            http.StatusServiceUnavailable,
	errors.TransactionNotFound.Code:            http.StatusNotFound,
	errors.BlockNotFound.Code:                  http.StatusNotFound,
	errors.InvalidMessage.Code:                 http.StatusBadRequest,
	errors.TransactionAlreadyExecuted.Code:     http.StatusBadRequest,
	errors.NoSuchPoll.Code:                     http.StatusNotFound,
	errors.NoneValue.Code:                      http.StatusNotFound,
}

// StatusCode maps an error to the response status; unknown errors are
// internal errors.
func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}
