package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/rankchoice/lib/block"
)

type Block struct {
	b block.Block
}

func NewBlock(b block.Block) *Block {
	return &Block{b: b}
}

func (blk Block) GetMap() hal.Entry {
	b := blk.b
	return hal.Entry{
		"version":           b.Version,
		"hash":              b.Hash,
		"height":            b.Height,
		"prev_block_hash":   b.PrevBlockHash,
		"transactions_root": b.TransactionsRoot,
		"proposed_time":     b.ProposedTime,
		"total_txs":         b.TotalTxs,
		"transactions":      b.Transactions,
	}
}

func (blk Block) Resource() *hal.Resource {
	return hal.NewResource(blk, blk.LinkSelf())
}

func (blk Block) LinkSelf() string {
	return strings.Replace(URLBlocks, "{id}", strconv.FormatUint(blk.b.Height, 10), -1)
}
