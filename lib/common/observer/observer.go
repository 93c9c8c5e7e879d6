package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// BlockObserver is triggered after a block and all of its transactions are
// committed; it is never triggered from inside a transition.
var BlockObserver = observable.New()

// EventObserver is triggered once per committed ledger event.
var EventObserver = observable.New()

const (
	EventBlockCommitted = "block-committed"
	EventAll            = "event-all"
)

// EventByType is the observer event name for one ledger event type.
func EventByType(t string) string {
	return "event-type=" + t
}
