package poll

import (
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/event"
)

// CastVote records the ballot of `voter`. The checks run in the order of
// `CastVoteCheckerFuncs`, so an unknown poll is reported before an inactive
// one and both before a repeated vote.
func (s *State) CastVote(id uint64, voter string, choices Choices) (err error) {
	checker := NewChecker(s.st, id, voter, CastVoteCheckerFuncs)
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	b := Ballot{
		PollID:  id,
		Voter:   voter,
		Choices: choices,
	}
	if err = s.st.New(BallotKey{PollID: id, Voter: voter}.String(), b); err != nil {
		return
	}

	if err = s.emit(event.NewVoteCast(id, voter)); err != nil {
		return
	}

	log.Debug("vote cast", "poll", id, "voter", voter)

	return
}
