package client

import (
	"fmt"

	"boscoin.io/rankchoice/lib/poll"
)

type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Error is returned when the node answers with a problem document.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("%d %s: code=%d", e.Problem.Status, e.Problem.Title, e.Problem.Code)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Poll struct {
	Links struct {
		Self  Link `json:"self"`
		Votes Link `json:"votes"`
	} `json:"_links"`

	ID       uint64 `json:"id"`
	Proposer string `json:"proposer"`
	NumItems uint8  `json:"num_items"`
	Content  []byte `json:"content"`
	Active   bool   `json:"active"`
}

type Ballot struct {
	Links struct {
		Self Link `json:"self"`
		Poll Link `json:"poll"`
	} `json:"_links"`

	PollID  uint64       `json:"poll_id"`
	Voter   string       `json:"voter"`
	Choices poll.Choices `json:"choices"`
}

type PageLinks struct {
	Self Link `json:"self"`
	Next Link `json:"next"`
	Prev Link `json:"prev"`
}

type BallotsPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Ballot `json:"records"`
	} `json:"_embedded"`
}

type Event struct {
	Links struct {
		Self        Link `json:"self"`
		Transaction Link `json:"transaction"`
	} `json:"_links"`

	Seq     uint64 `json:"seq"`
	Type    string `json:"type"`
	Height  uint64 `json:"height"`
	TxHash  string `json:"tx_hash"`
	PollID  uint64 `json:"poll_id,omitempty"`
	Account string `json:"account,omitempty"`
	Value   uint32 `json:"value,omitempty"`
}

type EventsPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Event `json:"records"`
	} `json:"_embedded"`
}

type LatestValue struct {
	Value uint32 `json:"value"`
}

type ReceiptError struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Transaction is either a receipt of an executed transaction or, while the
// transaction waits in the pool, its submission record with status
// "submitted".
type Transaction struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash           string        `json:"hash"`
	Source         string        `json:"source"`
	Status         string        `json:"status"`
	Height         uint64        `json:"height,omitempty"`
	Index          int           `json:"index,omitempty"`
	Error          *ReceiptError `json:"error,omitempty"`
	OperationIndex int           `json:"operation_index,omitempty"`
}

func (t Transaction) IsPending() bool {
	return t.Status == "submitted"
}

type Block struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Version          uint32   `json:"version"`
	Hash             string   `json:"hash"`
	Height           uint64   `json:"height"`
	PrevBlockHash    string   `json:"prev_block_hash"`
	TransactionsRoot string   `json:"transactions_root"`
	ProposedTime     string   `json:"proposed_time"`
	TotalTxs         uint64   `json:"total_txs"`
	Transactions     []string `json:"transactions"`
}
