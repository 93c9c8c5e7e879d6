package api

import (
	"fmt"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	PostTransactionPattern             = "/transactions"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	GetPollHandlerPattern              = "/polls/{id}"
	GetPollVotesHandlerPattern         = "/polls/{id}/votes"
	GetPollVoteHandlerPattern          = "/polls/{id}/votes/{address}"
	GetLatestValueHandlerPattern       = "/latest-value"
	GetEventsHandlerPattern            = "/events"
	GetLatestBlockHandlerPattern       = "/blocks/latest"
	GetBlockHandlerPattern             = "/blocks/{height}"
)

type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	pool      *transaction.Pool
	conf      common.Config
	urlPrefix string
	version   string

	// finalized polls never change, so they are kept here once read
	finalizedPolls *lru.Cache
}

func NewNetworkHandlerAPI(
	st *storage.LevelDBBackend,
	pool *transaction.Pool,
	conf common.Config,
	urlPrefix string,
) (*NetworkHandlerAPI, error) {
	size := conf.APICacheSize
	if size < 1 {
		size = common.DefaultAPICacheSize
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &NetworkHandlerAPI{
		storage:        st,
		pool:           pool,
		conf:           conf,
		urlPrefix:      urlPrefix,
		version:        APIVersionV1,
		finalizedPolls: cache,
	}, nil
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// Routes registers every endpoint under `HandlerURLPattern()`.
func (api *NetworkHandlerAPI) Routes(router *mux.Router) {
	router.Use(RecoverMiddleware(false))
	router.Use(MetricsMiddleware)

	router.HandleFunc(api.HandlerURLPattern(PostTransactionPattern), api.PostTransactionsHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetTransactionByHashHandlerPattern), api.GetTransactionByHashHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollVoteHandlerPattern), api.GetPollVoteHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollVotesHandlerPattern), api.GetPollVotesHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetPollHandlerPattern), api.GetPollHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetLatestValueHandlerPattern), api.GetLatestValueHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetEventsHandlerPattern), api.GetEventsHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetLatestBlockHandlerPattern), api.GetLatestBlockHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetBlockHandlerPattern), api.GetBlockHandler).Methods("GET")
}

// NewRouter returns a router serving only the API.
func (api *NetworkHandlerAPI) NewRouter() *mux.Router {
	router := mux.NewRouter()
	api.Routes(router)

	return router
}
