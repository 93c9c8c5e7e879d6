package event

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack"
)

type Type string

const (
	TypePollCreated   Type = "poll-created"
	TypeNewVoteCast   Type = "new-vote-cast"
	TypePollFinalized Type = "poll-finalized"
	TypeOffChainEvent Type = "off-chain-event"
)

// Event is one record of the ledger event log. `Seq`, `Height` and `TxHash`
// are filled by the recorder; only the fields of the event type are set.
type Event struct {
	Seq    uint64 `json:"seq"`
	Type   Type   `json:"type"`
	Height uint64 `json:"height"`
	TxHash string `json:"tx_hash"`

	PollID  uint64 `json:"poll_id,omitempty"`
	Account string `json:"account,omitempty"`
	Value   uint32 `json:"value,omitempty"`
}

func NewPollCreated(proposer string, pollID uint64) Event {
	return Event{Type: TypePollCreated, Account: proposer, PollID: pollID}
}

func NewVoteCast(pollID uint64, voter string) Event {
	return Event{Type: TypeNewVoteCast, PollID: pollID, Account: voter}
}

func NewPollFinalized(pollID uint64) Event {
	return Event{Type: TypePollFinalized, PollID: pollID}
}

func NewOffChainEvent(value uint32) Event {
	return Event{Type: TypeOffChainEvent, Value: value}
}

// Serialize encodes the event for the event log with msgpack.
func (e Event) Serialize() ([]byte, error) {
	return msgpack.Marshal(e)
}

func (e *Event) Deserialize(b []byte) error {
	return msgpack.Unmarshal(b, e)
}

func (e Event) String() string {
	encoded, _ := json.Marshal(e)
	return string(encoded)
}
