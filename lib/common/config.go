package common

import (
	"time"
)

//
// Config holds the node-level limits and timings.
// None of these values change the outcome of a transition; they only decide
// how often blocks are produced and how many transactions go into one.
//
type Config struct {
	BlockTime time.Duration

	TxsLimit    int
	OpsLimit    int
	TxPoolLimit int

	NetworkID []byte

	// Those fields are not ledger-related
	APICacheSize int
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.BlockTime = 5 * time.Second

	p.TxsLimit = 1000
	p.OpsLimit = MaxOperationsInTransaction
	p.TxPoolLimit = DefaultTxPoolLimit
	p.NetworkID = networkID

	p.APICacheSize = DefaultAPICacheSize

	return p
}
