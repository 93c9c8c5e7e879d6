package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/rankchoice/lib/block"
)

type Receipt struct {
	r block.Receipt
}

func NewReceipt(r block.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	entry := hal.Entry{
		"hash":   r.r.Hash,
		"source": r.r.Source,
		"height": r.r.Height,
		"index":  r.r.Index,
		"status": r.r.Status,
	}
	if r.r.Failed() {
		entry["error"] = r.r.Error
		entry["operation_index"] = r.r.OperationIndex
	}

	return entry
}

func (r Receipt) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", r.r.Hash, -1)
}

// TransactionPost is the answer to an accepted transaction; it is not
// executed yet.
type TransactionPost struct {
	hash   string
	source string
}

func NewTransactionPost(hash, source string) *TransactionPost {
	return &TransactionPost{hash: hash, source: source}
}

func (r TransactionPost) GetMap() hal.Entry {
	return hal.Entry{
		"hash":   r.hash,
		"source": r.source,
		"status": "submitted",
	}
}

func (r TransactionPost) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r TransactionPost) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", r.hash, -1)
}
