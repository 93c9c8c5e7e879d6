package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLPolls             = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollVotes         = APIPrefix + APIVersionV1 + "/polls/{id}/votes"
	URLPollVote          = APIPrefix + APIVersionV1 + "/polls/{id}/votes/{address}"
	URLLatestValue       = APIPrefix + APIVersionV1 + "/latest-value"
	URLEvents            = APIPrefix + APIVersionV1 + "/events"
	URLBlocks            = APIPrefix + APIVersionV1 + "/blocks/{id}"
)
