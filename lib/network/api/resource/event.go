package resource

import (
	"fmt"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/rankchoice/lib/event"
)

type Event struct {
	e event.Event
}

func NewEvent(e event.Event) *Event {
	return &Event{e: e}
}

func (r Event) GetMap() hal.Entry {
	entry := hal.Entry{
		"seq":     r.e.Seq,
		"type":    r.e.Type,
		"height":  r.e.Height,
		"tx_hash": r.e.TxHash,
	}

	switch r.e.Type {
	case event.TypePollCreated, event.TypeNewVoteCast:
		entry["poll_id"] = r.e.PollID
		entry["account"] = r.e.Account
	case event.TypePollFinalized:
		entry["poll_id"] = r.e.PollID
	case event.TypeOffChainEvent:
		entry["value"] = r.e.Value
	}

	return entry
}

func (r Event) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("transaction", hal.NewLink(strings.Replace(URLTransactionByHash, "{id}", r.e.TxHash, -1)))
	return res
}

func (r Event) LinkSelf() string {
	return fmt.Sprintf("%s?cursor=%d&limit=1", URLEvents, r.e.Seq)
}

type LatestValue struct {
	v uint32
}

func NewLatestValue(v uint32) *LatestValue {
	return &LatestValue{v: v}
}

func (r LatestValue) GetMap() hal.Entry {
	return hal.Entry{"value": r.v}
}

func (r LatestValue) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r LatestValue) LinkSelf() string {
	return URLLatestValue
}
