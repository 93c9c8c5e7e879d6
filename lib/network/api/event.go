package api

import (
	"net/http"
	"strconv"

	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/network/httputils"
	"boscoin.io/rankchoice/lib/storage"
)

// GetEventsHandler lists the event log; the cursor is an event sequence.
func (api NetworkHandlerAPI) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}

	events, err := event.GetEvents(api.storage, options)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var cursor string
	for _, e := range events {
		rs = append(rs, resource.NewEvent(e))
		cursor = strconv.FormatUint(e.Seq, 10)
	}

	httputils.MustWriteJSON(w, http.StatusOK, newResourceList(r, rs, options, cursor))
}
