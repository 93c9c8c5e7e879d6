package poll

import (
	"encoding/json"
	"fmt"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/storage"
)

// Choices is a ranked list of item indices. It is stored as given.
type Choices []byte

// MarshalJSON renders the choices as a list of numbers instead of the
// base64 string `encoding/json` uses for `[]byte`.
func (c Choices) MarshalJSON() ([]byte, error) {
	v := make([]int, len(c))
	for i, item := range c {
		v[i] = int(item)
	}
	return json.Marshal(v)
}

func (c *Choices) UnmarshalJSON(b []byte) error {
	var v []int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	items := make(Choices, len(v))
	for i, item := range v {
		if item < 0 || item > 255 {
			return fmt.Errorf("choice out of range: %d", item)
		}
		items[i] = uint8(item)
	}
	*c = items

	return nil
}

type Poll struct {
	ID       uint64 `json:"id"`
	Proposer string `json:"proposer"`
	NumItems uint8  `json:"num_items"`
	Content  []byte `json:"content"`
	Active   bool   `json:"active"`
}

func (p Poll) String() string {
	return string(common.MustEncodeJSONValue(p))
}

// BallotKey identifies the single ballot a voter may cast in a poll.
type BallotKey struct {
	PollID uint64
	Voter  string
}

func (k BallotKey) String() string {
	return fmt.Sprintf("%s%s-%s", common.PollPrefixBallot, common.PaddedUint64(k.PollID), k.Voter)
}

type Ballot struct {
	PollID  uint64  `json:"poll_id"`
	Voter   string  `json:"voter"`
	Choices Choices `json:"choices"`
}

func GetPollKey(id uint64) string {
	return fmt.Sprintf("%s%s", common.PollPrefixID, common.PaddedUint64(id))
}

// State owns the poll records, the ballots and the latest value cell.
// Every transition checks its preconditions before the first write, so a
// rejected call writes nothing; when `st` is a transaction backend the
// writes of an accepted call become visible together on commit.
type State struct {
	st      *storage.LevelDBBackend
	emitter event.Emitter
}

func NewState(st *storage.LevelDBBackend, emitter event.Emitter) *State {
	return &State{st: st, emitter: emitter}
}

func (s *State) emit(e event.Event) error {
	if s.emitter == nil {
		return nil
	}

	return s.emitter.Emit(e)
}

func getPoll(st *storage.LevelDBBackend, id uint64) (p Poll, found bool, err error) {
	if err = st.Get(GetPollKey(id), &p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = nil
		}
		return
	}

	found = true
	return
}

// GetPoll reads a poll; it does not fail for an unknown id.
func GetPoll(st *storage.LevelDBBackend, id uint64) (Poll, bool, error) {
	return getPoll(st, id)
}

func GetVotes(st *storage.LevelDBBackend, id uint64, voter string) (choices Choices, found bool, err error) {
	var b Ballot
	if err = st.Get(BallotKey{PollID: id, Voter: voter}.String(), &b); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = nil
		}
		return
	}

	return b.Choices, true, nil
}

// GetBallots lists the ballots of a poll in voter order.
func GetBallots(st *storage.LevelDBBackend, id uint64, options storage.ListOptions) (ballots []Ballot, err error) {
	prefix := fmt.Sprintf("%s%s-", common.PollPrefixBallot, common.PaddedUint64(id))
	iterFunc, closeFunc := st.GetIterator(prefix, options)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var b Ballot
		if err = json.Unmarshal(item.Value, &b); err != nil {
			return
		}
		ballots = append(ballots, b)
	}

	return
}

func (s *State) GetPoll(id uint64) (Poll, bool, error) {
	return getPoll(s.st, id)
}

func (s *State) GetVotes(id uint64, voter string) (Choices, bool, error) {
	return GetVotes(s.st, id, voter)
}
