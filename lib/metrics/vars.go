package metrics

var (
	Ledger   = NopLedgerMetrics()
	Offchain = NopOffchainMetrics()
	TxPool   = NopTxPoolMetrics()
	API      = NopAPIMetrics()
)
