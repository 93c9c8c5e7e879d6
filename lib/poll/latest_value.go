package poll

import (
	"math"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/storage"
)

// GetLatestValue returns `errors.NoneValue` when the cell was never set.
func GetLatestValue(st *storage.LevelDBBackend) (v uint32, err error) {
	if err = st.Get(common.LatestValueKey, &v); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NoneValue
		}
		return
	}

	return
}

func (s *State) GetLatestValue() (uint32, error) {
	return GetLatestValue(s.st)
}

// UpdateLatestValue overwrites the cell. Any signed caller may do it.
func (s *State) UpdateLatestValue(caller string, v uint32) (err error) {
	if err = s.st.Put(common.LatestValueKey, v); err != nil {
		return
	}

	if err = s.emit(event.NewOffChainEvent(v)); err != nil {
		return
	}

	log.Debug("latest value updated", "caller", caller, "value", v)

	return
}

func (s *State) IncrementLatestValue(caller string) (err error) {
	var v uint32
	if v, err = GetLatestValue(s.st); err != nil {
		return
	}

	if v == math.MaxUint32 {
		err = errors.StorageOverflow
		return
	}

	return s.UpdateLatestValue(caller, v+1)
}
