package poll

import (
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/event"
	"boscoin.io/rankchoice/lib/storage"
)

func prepareState() (*storage.LevelDBBackend, *State, *event.Recorder) {
	st := storage.NewTestMemoryLevelDBBackend()
	recorder := event.NewRecorder(st, 1, "")

	return st, NewState(st, recorder), recorder
}

func randomAddress() string {
	return keypair.Random().Address()
}
