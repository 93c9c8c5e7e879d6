package runtime

import (
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

// ApplyOperation runs one operation with `source` as the caller.
func ApplyOperation(s *poll.State, source string, op operation.Operation) (err error) {
	switch body := op.B.(type) {
	case operation.CreatePoll:
		_, err = s.CreatePoll(source, body.NumItems, body.Content)
	case operation.CastVote:
		err = s.CastVote(body.PollID, source, body.Choices)
	case operation.FinalizePoll:
		err = s.FinalizePoll(body.PollID, source)
	case operation.UpdateLatestValue:
		err = s.UpdateLatestValue(source, body.Value)
	case operation.IncrementLatestValue:
		err = s.IncrementLatestValue(source)
	default:
		err = errors.UnknownOperationType
	}

	return
}
