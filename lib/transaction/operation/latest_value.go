package operation

import (
	"boscoin.io/rankchoice/lib/common"
)

// UpdateLatestValue is what the offchain reconciler submits every height.
type UpdateLatestValue struct {
	Value uint32 `json:"value"`
}

func NewUpdateLatestValue(v uint32) UpdateLatestValue {
	return UpdateLatestValue{Value: v}
}

func (o UpdateLatestValue) IsWellFormed(common.Config) error {
	return nil
}

type IncrementLatestValue struct{}

func (o IncrementLatestValue) IsWellFormed(common.Config) error {
	return nil
}
