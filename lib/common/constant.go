package common

const (
	// GenesisBlockHeight is the height before the first produced block.
	GenesisBlockHeight uint64 = 0

	MaxOperationsInTransaction int = 100
	DefaultTxPoolLimit         int = 1000000
	DefaultAPICacheSize        int = 1024

	TransactionVersionV1 string = "1"
)

// Storage key prefixes. Every prefix ends with "-" so a prefix never matches
// a longer sibling prefix.
const (
	PollPrefixID      string = "poll-id-"
	PollPrefixBallot  string = "poll-ballot-"
	PollNextIDKey     string = "poll-next-id"
	LatestValueKey    string = "latest-value"
	EventPrefixSeq    string = "event-seq-"
	EventNextSeqKey   string = "event-next-seq"
	BlockPrefixHeight string = "block-height-"
	BlockLatestKey    string = "block-latest"
	ReceiptPrefixHash string = "receipt-hash-"
)
