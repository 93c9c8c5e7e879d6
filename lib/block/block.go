package block

import (
	"encoding/json"
	"fmt"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/storage"
)

type Header struct {
	Version          uint32 `json:"version"`
	PrevBlockHash    string `json:"prev_block_hash"`
	TransactionsRoot string `json:"transactions_root"`
	ProposedTime     string `json:"proposed_time"`
	Height           uint64 `json:"height"`
	TotalTxs         uint64 `json:"total_txs"`
}

type Block struct {
	Header
	Transactions []string `json:"transactions"` /* []Transaction.GetHash() */

	Hash string `json:"hash"`
}

func (bck Block) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(bck)
	return
}

func (bck Block) String() string {
	encoded, _ := json.MarshalIndent(bck, "", "  ")
	return string(encoded)
}

// NewBlock makes the block following `prev`; for the first block `prev` is
// the zero Block.
func NewBlock(prev Block, transactions []string, proposedTime string) Block {
	if transactions == nil {
		transactions = []string{}
	}

	b := &Block{
		Header: Header{
			PrevBlockHash:    prev.Hash,
			TransactionsRoot: getTransactionRoot(transactions),
			ProposedTime:     proposedTime,
			Height:           prev.Height + 1,
			TotalTxs:         prev.TotalTxs + uint64(len(transactions)),
		},
		Transactions: transactions,
	}

	log.Debug("NewBlock created", "height", b.Height, "txs", len(transactions), "total-txs", b.TotalTxs)

	b.Hash = common.MustMakeObjectHashString(b.Header)

	return *b
}

func getTransactionRoot(txs []string) string {
	return common.MustMakeObjectHashString(txs)
}

func GetBlockKeyPrefixHeight(height uint64) string {
	return fmt.Sprintf("%s%s", common.BlockPrefixHeight, common.PaddedUint64(height))
}

// Save stores the block and moves the latest height to it.
func (b Block) Save(st *storage.LevelDBBackend) (err error) {
	if err = st.New(GetBlockKeyPrefixHeight(b.Height), b); err != nil {
		return
	}

	if err = st.Put(common.BlockLatestKey, b.Height); err != nil {
		return
	}

	return
}

func GetBlockByHeight(st *storage.LevelDBBackend, height uint64) (b Block, err error) {
	if err = st.Get(GetBlockKeyPrefixHeight(height), &b); err == errors.StorageRecordDoesNotExist {
		err = errors.BlockNotFound
	}
	return
}

func ExistsBlockByHeight(st *storage.LevelDBBackend, height uint64) (bool, error) {
	return st.Has(GetBlockKeyPrefixHeight(height))
}

// GetLatestBlock returns `errors.BlockNotFound` before the first block is
// saved.
func GetLatestBlock(st *storage.LevelDBBackend) (b Block, err error) {
	var height uint64
	if err = st.Get(common.BlockLatestKey, &height); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.BlockNotFound
		}
		return
	}

	return GetBlockByHeight(st, height)
}

// GetLatestHeight returns `common.GenesisBlockHeight` before the first block
// is saved.
func GetLatestHeight(st *storage.LevelDBBackend) (height uint64, err error) {
	if err = st.Get(common.BlockLatestKey, &height); err == errors.StorageRecordDoesNotExist {
		return common.GenesisBlockHeight, nil
	}

	return
}
