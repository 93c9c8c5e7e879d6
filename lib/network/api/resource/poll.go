package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/rankchoice/lib/poll"
)

type Poll struct {
	p poll.Poll
}

func NewPoll(p poll.Poll) *Poll {
	return &Poll{p: p}
}

func (r Poll) GetMap() hal.Entry {
	return hal.Entry{
		"id":        r.p.ID,
		"proposer":  r.p.Proposer,
		"num_items": r.p.NumItems,
		"content":   r.p.Content,
		"active":    r.p.Active,
	}
}

func (r Poll) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("votes", hal.NewLink(strings.Replace(URLPollVote, "{id}", r.id(), -1), hal.LinkAttr{"templated": true}))
	res.AddLink("ballots", hal.NewLink(strings.Replace(URLPollVotes, "{id}", r.id(), -1)))
	return res
}

func (r Poll) id() string {
	return strconv.FormatUint(r.p.ID, 10)
}

func (r Poll) LinkSelf() string {
	return strings.Replace(URLPolls, "{id}", r.id(), -1)
}

type Ballot struct {
	b poll.Ballot
}

func NewBallot(b poll.Ballot) *Ballot {
	return &Ballot{b: b}
}

func (r Ballot) GetMap() hal.Entry {
	return hal.Entry{
		"poll_id": r.b.PollID,
		"voter":   r.b.Voter,
		"choices": r.b.Choices,
	}
}

func (r Ballot) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("poll", hal.NewLink(strings.Replace(URLPolls, "{id}", strconv.FormatUint(r.b.PollID, 10), -1)))
	return res
}

func (r Ballot) LinkSelf() string {
	s := strings.Replace(URLPollVote, "{id}", strconv.FormatUint(r.b.PollID, 10), -1)
	return strings.Replace(s, "{address}", r.b.Voter, -1)
}
