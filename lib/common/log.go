package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/rankchoice/lib/errors"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLogging set the logger
func SetLogging(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

// logFormatErrorKey holds the reason a record could not be formatted.
const logFormatErrorKey = "log_error"

func logValue(value interface{}) (result interface{}) {
	// nil pointer with a value receiver
	defer func() {
		if err := recover(); err != nil {
			if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
				result = nil
				return
			}
			panic(err)
		}
	}()

	switch v := value.(type) {
	case *errors.Error:
		// keeps code and data of ledger errors
		return v
	case json.Marshaler, Serializable:
		return v
	case time.Time:
		return FormatISO8601(v)
	case time.Duration:
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

// JSONFormat writes one json object per line, like
// `{"t":"...","lvl":"info","msg":"...","module":"executor",...}`. Time is
// ISO8601.
func JSONFormat() logging.Format {
	return logging.FormatFunc(func(r *logging.Record) []byte {
		props := map[string]interface{}{
			r.KeyNames.Time: FormatISO8601(r.Time),
			r.KeyNames.Lvl:  r.Lvl.String(),
			r.KeyNames.Msg:  r.Msg,
		}

		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				k = fmt.Sprintf("%v", r.Ctx[i])
				props[logFormatErrorKey] = fmt.Sprintf("key %q is not a string", k)
			}
			props[k] = logValue(r.Ctx[i+1])
		}

		b, err := json.Marshal(props)
		if err != nil {
			b, _ = json.Marshal(map[string]string{
				r.KeyNames.Msg:    r.Msg,
				logFormatErrorKey: err.Error(),
			})
		}

		return append(b, '\n')
	})
}
