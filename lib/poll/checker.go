package poll

import (
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/storage"
)

// Checker carries one call against an existing poll through its ordered
// checks. `CheckPollExists` fills `Poll` for the checks after it.
type Checker struct {
	common.DefaultChecker

	st *storage.LevelDBBackend

	PollID  uint64
	Account string
	Poll    Poll
}

func NewChecker(st *storage.LevelDBBackend, id uint64, account string, funcs []common.CheckerFunc) *Checker {
	return &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: funcs},
		st:             st,
		PollID:         id,
		Account:        account,
	}
}

func CheckPollExists(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var found bool
	if checker.Poll, found, err = getPoll(checker.st, checker.PollID); err != nil {
		return
	} else if !found {
		err = errors.NoSuchPoll
		return
	}

	return
}

func CheckPollActive(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if !checker.Poll.Active {
		err = errors.PollNotActive
		return
	}

	return
}

func CheckNotVoted(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var exists bool
	key := BallotKey{PollID: checker.PollID, Voter: checker.Account}
	if exists, err = checker.st.Has(key.String()); err != nil {
		return
	} else if exists {
		err = errors.AlreadyVoted
		return
	}

	return
}

func CheckProposer(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Poll.Proposer != checker.Account {
		err = errors.NotAuthorized
		return
	}

	return
}

func CheckNotFinalized(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if !checker.Poll.Active {
		err = errors.PollAlreadyFinalized
		return
	}

	return
}

var CastVoteCheckerFuncs = []common.CheckerFunc{
	CheckPollExists,
	CheckPollActive,
	CheckNotVoted,
}

var FinalizePollCheckerFuncs = []common.CheckerFunc{
	CheckPollExists,
	CheckProposer,
	CheckNotFinalized,
}
