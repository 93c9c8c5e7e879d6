package block

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/rankchoice/lib/common"
)

var log logging.Logger = logging.New("module", "block")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}
