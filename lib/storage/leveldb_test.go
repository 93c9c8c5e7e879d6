package storage

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"boscoin.io/rankchoice/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, err := ioutil.TempDir("", "rankchoice-"+uuid.New().String())
	require.NoError(t, err)
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.New("showme", 1))

	var fetched int
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 1, fetched)
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	key := "showme"
	input := map[string]string{
		"90": "99",
		"91": "91",
	}
	require.NoError(t, st.New(key, input))

	fetched := map[string]string{}
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	err := st.New(key, input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendSetAndPut(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Set("showme", 1))

	require.NoError(t, st.Put("showme", 1))
	require.NoError(t, st.Set("showme", 2))

	var fetched int
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 2, fetched)

	require.NoError(t, st.Put("showme", 3))
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 3, fetched)
}

func TestLevelDBBackendGetMissing(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	var fetched int
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Get("killme", &fetched))

	exists, err := st.Has("killme")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendRemove(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove("showme"))
	require.NoError(t, st.New("showme", 1))
	require.NoError(t, st.Remove("showme"))

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendTransactionCommit(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	require.True(t, ts.IsTransaction())

	_, err = ts.OpenTransaction()
	require.Error(t, err)

	require.NoError(t, ts.New("showme", 1))

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists, "uncommitted write must not be visible")

	require.NoError(t, ts.Commit())

	exists, err = st.Has("showme")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestLevelDBBackendTransactionDiscard(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)

	require.NoError(t, ts.New("showme", 1))
	require.NoError(t, ts.New("findme", 2))
	require.NoError(t, ts.Discard())

	for _, key := range []string{"showme", "findme"} {
		exists, err := st.Has(key)
		require.NoError(t, err)
		require.False(t, exists)
	}

	require.Error(t, st.Commit())
	require.Error(t, st.Discard())
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	require.NoError(t, st.News(Item{Key: "a", Value: 1}, Item{Key: "b", Value: 2}))
	require.Equal(t, errors.StorageRecordAlreadyExists, st.News(Item{Key: "c", Value: 3}, Item{Key: "a", Value: 1}))

	exists, err := st.Has("c")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	prefix := "showme-"
	for i := 0; i < 10; i++ {
		require.NoError(t, st.New(fmt.Sprintf("%s%02d", prefix, i), i))
	}
	require.NoError(t, st.New("killme-00", 100))

	collect := func(option ListOptions) (values []int) {
		iterFunc, closeFunc := st.GetIterator(prefix, option)
		defer closeFunc()
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			var v int
			require.NoError(t, json.Unmarshal(item.Value, &v))
			values = append(values, v)
		}
		return
	}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, collect(nil))
	require.Equal(t, []int{9, 8, 7}, collect(NewDefaultListOptions(true, nil, 3)))
	require.Equal(t, []int{4, 5, 6}, collect(NewDefaultListOptions(false, []byte(prefix+"04"), 3)))
	require.Equal(t, []int{4, 3}, collect(NewDefaultListOptions(true, []byte(prefix+"04"), 2)))
	require.Equal(t, []int(nil), collect(NewDefaultListOptions(false, []byte(prefix+"99"), 3)))
}
