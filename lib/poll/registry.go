package poll

import (
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/storage"
)

// FirstPollID is the id of the first created poll.
const FirstPollID uint64 = 1

func nextPollID(st *storage.LevelDBBackend) (id uint64, err error) {
	if err = st.Get(common.PollNextIDKey, &id); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return FirstPollID, nil
		}
		return
	}

	return
}

// NextPollID returns the id the next created poll will get.
func NextPollID(st *storage.LevelDBBackend) (uint64, error) {
	return nextPollID(st)
}

func (s *State) NextPollID() (uint64, error) {
	return nextPollID(s.st)
}

// CreatePoll stores a new active poll under the current counter value and
// advances the counter by one. `numItems` and `content` are stored as given.
func (s *State) CreatePoll(proposer string, numItems uint8, content []byte) (id uint64, err error) {
	if id, err = nextPollID(s.st); err != nil {
		return
	}

	p := Poll{
		ID:       id,
		Proposer: proposer,
		NumItems: numItems,
		Content:  content,
		Active:   true,
	}
	if err = s.st.New(GetPollKey(id), p); err != nil {
		return
	}
	if err = s.st.Put(common.PollNextIDKey, id+1); err != nil {
		return
	}

	if err = s.emit(event.NewPollCreated(proposer, id)); err != nil {
		return
	}

	log.Debug("poll created", "id", id, "proposer", proposer, "num-items", numItems)

	return
}
