package api

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/test"
)

func init() {
	common.SetLogging(log, logging.LvlDebug, test.LogHandler())
}
