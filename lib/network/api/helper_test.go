package api

import (
	"net/http/httptest"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/runtime"
	"boscoin.io/rankchoice/lib/storage"
	"boscoin.io/rankchoice/lib/transaction"
)

var networkID []byte = []byte("rankchoice-test-network")

type testAPIServer struct {
	*httptest.Server

	api      *NetworkHandlerAPI
	storage  *storage.LevelDBBackend
	pool     *transaction.Pool
	executor *runtime.Executor
}

func (ts *testAPIServer) URL(pattern string) string {
	return ts.Server.URL + ts.api.HandlerURLPattern(pattern)
}

func (ts *testAPIServer) Close() {
	ts.Server.Close()
	ts.storage.Close()
}

func prepareAPIServer() *testAPIServer {
	st := storage.NewTestMemoryLevelDBBackend()
	conf := common.NewConfig(networkID)
	pool := transaction.NewPool(conf.TxPoolLimit)

	apiHandler, err := NewNetworkHandlerAPI(st, pool, conf, "/api")
	if err != nil {
		panic(err)
	}

	return &testAPIServer{
		Server:   httptest.NewServer(apiHandler.NewRouter()),
		api:      apiHandler,
		storage:  st,
		pool:     pool,
		executor: runtime.NewExecutor(st, conf),
	}
}
