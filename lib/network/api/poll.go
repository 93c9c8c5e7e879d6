package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/network/httputils"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/storage"
)

func parsePollID(r *http.Request) (uint64, error) {
	s := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.InvalidMessage.Clone().SetData("id", s)
	}

	return id, nil
}

func (api NetworkHandlerAPI) getPoll(id uint64) (p poll.Poll, found bool, err error) {
	if cached, ok := api.finalizedPolls.Get(id); ok {
		return cached.(poll.Poll), true, nil
	}

	if p, found, err = poll.GetPoll(api.storage, id); err != nil || !found {
		return
	}

	if !p.Active {
		api.finalizedPolls.Add(id, p)
	}

	return
}

func (api NetworkHandlerAPI) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, found, err := api.getPoll(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if !found {
		httputils.WriteJSONError(w, errors.NoSuchPoll)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewPoll(p))
}

func (api NetworkHandlerAPI) GetPollVoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	voter := mux.Vars(r)["address"]

	choices, found, err := poll.GetVotes(api.storage, id, voter)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if !found {
		httputils.WriteJSONError(w, errors.StorageRecordDoesNotExist)
		return
	}

	b := poll.Ballot{PollID: id, Voter: voter, Choices: choices}
	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBallot(b))
}

// GetPollVotesHandler lists the ballots of a poll; the cursor is a voter
// address.
func (api NetworkHandlerAPI) GetPollVotesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if _, found, err := api.getPoll(id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if !found {
		httputils.WriteJSONError(w, errors.NoSuchPoll)
		return
	}

	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}
	if len(options.Cursor()) > 0 {
		options.SetCursor([]byte(poll.BallotKey{PollID: id, Voter: string(options.Cursor())}.String()))
	}

	ballots, err := poll.GetBallots(api.storage, id, options)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var cursor string
	for _, b := range ballots {
		rs = append(rs, resource.NewBallot(b))
		cursor = b.Voter
	}

	httputils.MustWriteJSON(w, http.StatusOK, newResourceList(r, rs, options, cursor))
}

func (api NetworkHandlerAPI) GetLatestValueHandler(w http.ResponseWriter, r *http.Request) {
	v, err := poll.GetLatestValue(api.storage)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewLatestValue(v))
}
