package poll

import (
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/event"
)

// FinalizePoll closes an active poll for good. Only the proposer may do it;
// there is no way back to active.
func (s *State) FinalizePoll(id uint64, requester string) (err error) {
	checker := NewChecker(s.st, id, requester, FinalizePollCheckerFuncs)
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	p := checker.Poll
	p.Active = false
	if err = s.st.Set(GetPollKey(id), p); err != nil {
		return
	}

	if err = s.emit(event.NewPollFinalized(id)); err != nil {
		return
	}

	log.Debug("poll finalized", "id", id)

	return
}
