package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetLatestBlockHandler(w http.ResponseWriter, r *http.Request) {
	b, err := block.GetLatestBlock(api.storage)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBlock(b))
}

func (api NetworkHandlerAPI) GetBlockHandler(w http.ResponseWriter, r *http.Request) {
	s := mux.Vars(r)["height"]
	height, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("height", s))
		return
	}

	b, err := block.GetBlockByHeight(api.storage, height)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBlock(b))
}
