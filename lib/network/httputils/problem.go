package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/rankchoice/lib/errors"
)

const ProblemTypeErrorPrefix = "https://boscoin.io/rankchoice/errors/"

// Problem is the RFC7807 error body.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes the problem of `err`. `*errors.Error` keeps its code
// and data; other errors keep only their message.
func NewErrorProblem(err error, status int) Problem {
	if e, ok := err.(*errors.Error); ok {
		p := Problem{
			Type:   fmt.Sprintf("%s%d", ProblemTypeErrorPrefix, e.Code),
			Title:  e.Message,
			Status: status,
			Code:   e.Code,
		}
		if len(e.Data) > 0 {
			p.Data = e.Data
		}
		return p
	}

	return NewDetailedStatusProblem(status, err.Error())
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
