package metrics

const (
	Namespace         = "rankchoice"
	LedgerSubsystem   = "ledger"
	OffchainSubsystem = "offchain"
	TxPoolSubsystem   = "txpool"
	APISubsystem      = "api"
)

const (
	LedgerStatus  = "status"
	LedgerSuccess = "success"
	LedgerFailed  = "failed"

	OffchainResult       = "result"
	OffchainSubmitted    = "submitted"
	OffchainNoSigner     = "no-signer"
	OffchainSubmitFailed = "submit-failed"

	TxPoolReason     = "reason"
	TxPoolDuplicated = "duplicated"
	TxPoolFull       = "full"

	APIEndpoint = "endpoint"
	APIMethod   = "method"
	APIStatus   = "status"
)
