package operation

import (
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/poll"
)

// CreatePoll opens a new poll proposed by the transaction source. The item
// count and the content are kept as given.
type CreatePoll struct {
	NumItems uint8  `json:"num_items"`
	Content  []byte `json:"content"`
}

func NewCreatePoll(numItems uint8, content []byte) CreatePoll {
	return CreatePoll{
		NumItems: numItems,
		Content:  content,
	}
}

func (o CreatePoll) IsWellFormed(common.Config) error {
	return nil
}

type CastVote struct {
	PollID  uint64       `json:"poll_id"`
	Choices poll.Choices `json:"choices"`
}

func NewCastVote(pollID uint64, choices poll.Choices) CastVote {
	return CastVote{
		PollID:  pollID,
		Choices: choices,
	}
}

func (o CastVote) IsWellFormed(common.Config) error {
	return nil
}

type FinalizePoll struct {
	PollID uint64 `json:"poll_id"`
}

func NewFinalizePoll(pollID uint64) FinalizePoll {
	return FinalizePoll{PollID: pollID}
}

func (o FinalizePoll) IsWellFormed(common.Config) error {
	return nil
}
