package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
)

type OperationType string

const (
	TypeCreatePoll           OperationType = "create-poll"
	TypeCastVote             OperationType = "cast-vote"
	TypeFinalizePoll         OperationType = "finalize-poll"
	TypeUpdateLatestValue    OperationType = "update-latest-value"
	TypeIncrementLatestValue OperationType = "increment-latest-value"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeCreatePoll),
		string(TypeCastVote),
		string(TypeFinalizePoll),
		string(TypeUpdateLatestValue),
		string(TypeIncrementLatestValue),
	}, oType)
	return b
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreatePoll:
		t = TypeCreatePoll
	case CastVote:
		t = TypeCastVote
	case FinalizePoll:
		t = TypeFinalizePoll
	case UpdateLatestValue:
		t = TypeUpdateLatestValue
	case IncrementLatestValue:
		t = TypeIncrementLatestValue
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}

	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation is self consistent. It does not look at the
	// ledger state; the ledger checks run when the operation is executed.
	//
	IsWellFormed(common.Config) error
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	if !IsValidOperationType(string(o.H.Type)) {
		return errors.UnknownOperationType
	}
	if o.B == nil {
		return errors.InvalidOperation
	}

	var expected Operation
	if expected, err = NewOperation(o.B); err != nil {
		return
	} else if expected.H.Type != o.H.Type {
		return errors.InvalidOperation
	}

	return o.B.IsWellFormed(conf)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		// values within interfaces are not addressable, so the pointer is
		// dereferenced through reflect
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreatePoll:
		return &CreatePoll{}, nil
	case TypeCastVote:
		return &CastVote{}, nil
	case TypeFinalizePoll:
		return &FinalizePoll{}, nil
	case TypeUpdateLatestValue:
		return &UpdateLatestValue{}, nil
	case TypeIncrementLatestValue:
		return &IncrementLatestValue{}, nil
	default:
		return nil, errors.UnknownOperationType
	}
}
