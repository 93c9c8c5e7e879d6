package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", "application/hal+json")
		v = h.Resource()
	} else if e, ok := v.(error); ok {
		w.Header().Set("Content-Type", "application/problem+json")
		v = NewErrorProblem(e, code)
	} else if _, ok := v.(Problem); ok {
		w.Header().Set("Content-Type", "application/problem+json")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)
	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		panic(err)
	}
}

// WriteJSONError writes `err` as problem with the status of `StatusCode()`.
func WriteJSONError(w http.ResponseWriter, err error) {
	MustWriteJSON(w, StatusCode(err), err)
}
