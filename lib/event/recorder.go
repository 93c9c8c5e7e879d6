package event

import (
	"fmt"

	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/observer"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/storage"
)

// Emitter receives the events of one transition.
type Emitter interface {
	Emit(Event) error
}

// Recorder appends events to the stored event log through the storage it was
// given. With a transaction backend the events become visible together with
// the rest of the transition, and `Notify()` must be called only after the
// commit.
type Recorder struct {
	st     *storage.LevelDBBackend
	height uint64
	txHash string

	emitted []Event
}

func NewRecorder(st *storage.LevelDBBackend, height uint64, txHash string) *Recorder {
	return &Recorder{
		st:     st,
		height: height,
		txHash: txHash,
	}
}

func GetEventKey(seq uint64) string {
	return fmt.Sprintf("%s%s", common.EventPrefixSeq, common.PaddedUint64(seq))
}

func nextSeq(st *storage.LevelDBBackend) (seq uint64, err error) {
	if err = st.Get(common.EventNextSeqKey, &seq); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 1, nil
		}
		return
	}

	return
}

func (r *Recorder) Emit(e Event) (err error) {
	var seq uint64
	if seq, err = nextSeq(r.st); err != nil {
		return
	}

	e.Seq = seq
	e.Height = r.height
	e.TxHash = r.txHash

	var b []byte
	if b, err = e.Serialize(); err != nil {
		return
	}

	if err = r.st.NewRaw(GetEventKey(seq), b); err != nil {
		return
	}
	if err = r.st.Put(common.EventNextSeqKey, seq+1); err != nil {
		return
	}

	r.emitted = append(r.emitted, e)

	return
}

func (r *Recorder) Emitted() []Event {
	return r.emitted
}

// Notify triggers `observer.EventObserver` for every recorded event.
func (r *Recorder) Notify() {
	for _, e := range r.emitted {
		observer.EventObserver.Trigger(observer.EventAll, e)
		observer.EventObserver.Trigger(observer.EventByType(string(e.Type)), e)
	}
}

func GetEvent(st *storage.LevelDBBackend, seq uint64) (e Event, err error) {
	var b []byte
	if b, err = st.GetRaw(GetEventKey(seq)); err != nil {
		return
	}

	err = e.Deserialize(b)
	return
}

// GetEvents reads a page of the event log. The cursor of `options` is a
// sequence number in decimal.
func GetEvents(st *storage.LevelDBBackend, options storage.ListOptions) (events []Event, err error) {
	if options != nil && len(options.Cursor()) > 0 {
		var seq uint64
		if _, err = fmt.Sscanf(string(options.Cursor()), "%d", &seq); err != nil {
			err = errors.InvalidMessage.Clone().SetData("cursor", string(options.Cursor()))
			return
		}
		options = storage.NewDefaultListOptions(
			options.Reverse(),
			[]byte(GetEventKey(seq)),
			options.Limit(),
		)
	}

	iterFunc, closeFunc := st.GetIterator(common.EventPrefixSeq, options)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var e Event
		if err = e.Deserialize(item.Value); err != nil {
			return
		}
		events = append(events, e)
	}

	return
}
