package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Ledger = PromLedgerMetrics()
	Offchain = PromOffchainMetrics()
	TxPool = PromTxPoolMetrics()
	API = PromAPIMetrics()
}
