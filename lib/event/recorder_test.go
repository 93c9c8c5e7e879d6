package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/common/observer"
	"boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/storage"
)

func TestRecorderEmit(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	r := NewRecorder(st, 3, "findme")
	require.NoError(t, r.Emit(NewPollCreated("GA", 1)))
	require.NoError(t, r.Emit(NewVoteCast(1, "GB")))

	require.Equal(t, 2, len(r.Emitted()))

	e, err := GetEvent(st, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), e.Seq)
	require.Equal(t, TypePollCreated, e.Type)
	require.Equal(t, "GA", e.Account)
	require.Equal(t, uint64(1), e.PollID)
	require.Equal(t, uint64(3), e.Height)
	require.Equal(t, "findme", e.TxHash)

	e, err = GetEvent(st, 2)
	require.NoError(t, err)
	require.Equal(t, TypeNewVoteCast, e.Type)
	require.Equal(t, "GB", e.Account)

	_, err = GetEvent(st, 3)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	// a new recorder continues the sequence
	r = NewRecorder(st, 4, "showme")
	require.NoError(t, r.Emit(NewOffChainEvent(99)))
	require.Equal(t, uint64(3), r.Emitted()[0].Seq)
}

func TestRecorderDiscardedTransaction(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)

	r := NewRecorder(ts, 1, "killme")
	require.NoError(t, r.Emit(NewPollFinalized(1)))
	require.NoError(t, ts.Discard())

	events, err := GetEvents(st, nil)
	require.NoError(t, err)
	require.Empty(t, events)

	// the sequence is not advanced by the discarded event
	r = NewRecorder(st, 2, "findme")
	require.NoError(t, r.Emit(NewPollFinalized(1)))
	require.Equal(t, uint64(1), r.Emitted()[0].Seq)
}

func TestGetEvents(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	r := NewRecorder(st, 1, "findme")
	for i := uint32(1); i <= 12; i++ {
		require.NoError(t, r.Emit(NewOffChainEvent(i)))
	}

	values := func(events []Event) (v []uint32) {
		for _, e := range events {
			v = append(v, e.Value)
		}
		return
	}

	events, err := GetEvents(st, nil)
	require.NoError(t, err)
	require.Equal(t, 12, len(events))
	require.Equal(t, uint32(1), events[0].Value)

	events, err = GetEvents(st, storage.NewDefaultListOptions(false, []byte("10"), 5))
	require.NoError(t, err)
	require.Equal(t, []uint32{10, 11, 12}, values(events))

	events, err = GetEvents(st, storage.NewDefaultListOptions(true, nil, 2))
	require.NoError(t, err)
	require.Equal(t, []uint32{12, 11}, values(events))

	_, err = GetEvents(st, storage.NewDefaultListOptions(false, []byte("showme"), 2))
	require.True(t, errors.InvalidMessage.Is(err))
}

func TestRecorderNotify(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	var received []Event
	f := func(args ...interface{}) {
		received = append(received, args[0].(Event))
	}
	observer.EventObserver.On(observer.EventByType(string(TypeNewVoteCast)), f)
	defer observer.EventObserver.Off(observer.EventByType(string(TypeNewVoteCast)), f)

	r := NewRecorder(st, 1, "findme")
	require.NoError(t, r.Emit(NewPollCreated("GA", 1)))
	require.NoError(t, r.Emit(NewVoteCast(1, "GB")))
	require.Empty(t, received)

	r.Notify()
	require.Equal(t, 1, len(received))
	require.Equal(t, "GB", received[0].Account)
}
