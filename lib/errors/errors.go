package errors

var (
	StorageCoreError               = NewError(100, "storage error")
	StorageRecordAlreadyExists     = NewError(101, "record already exists in storage")
	StorageRecordDoesNotExist      = NewError(102, "record does not exist in storage")
	StorageInvalidConfig           = NewError(103, "invalid storage config")
	TransactionEmptyOperations     = NewError(110, "operations are empty")
	TransactionHasOverMaxOps       = NewError(111, "too many operations in transaction")
	BadPublicAddress               = NewError(112, "failed to parse public address")
	InvalidTransactionHash         = NewError(113, "transaction hash does not match the body")
	SignatureVerificationFailed    = NewError(114, "signature verification failed")
	UnknownOperationType           = NewError(115, "unknown operation type")
	InvalidOperation               = NewError(116, "invalid operation")
	TransactionAlreadyExistsInPool = NewError(117, "transaction already exists in pool")
	TransactionPoolFull            = NewError(118, "transaction pool is full")
	TransactionNotFound            = NewError(119, "transaction not found")
	BlockNotFound                  = NewError(120, "block not found")
	InvalidMessage                 = NewError(121, "invalid message")
	TransactionAlreadyExecuted     = NewError(122, "transaction already executed")

	NoSuchPoll           = NewError(130, "there was no poll with a given id")
	PollNotActive        = NewError(131, "poll is not active")
	AlreadyVoted         = NewError(132, "already voted in this poll")
	NotAuthorized        = NewError(133, "only the proposer can finalize the poll")
	PollAlreadyFinalized = NewError(134, "poll is already finalized")
	NoneValue            = NewError(135, "latest value has not been set")
	StorageOverflow      = NewError(136, "latest value would overflow")

	NoLocalAcctForSigning = NewError(140, "no local account available for signing")
	OffchainSignedTxError = NewError(141, "failed to submit offchain signed transaction")
)
