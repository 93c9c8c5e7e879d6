package common

import (
	"encoding/json"
	"fmt"
	"os"
)

// Serializable is implemented by values that know their own stored form.
type Serializable interface {
	Serialize() ([]byte, error)
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func EncodeJSONValue(i interface{}) ([]byte, error) {
	return json.Marshal(i)
}

func MustEncodeJSONValue(i interface{}) []byte {
	b, err := EncodeJSONValue(i)
	if err != nil {
		panic(err)
	}

	return b
}

// PaddedUint64 formats n with fixed width so the lexical order of storage
// keys follows the numeric order.
func PaddedUint64(n uint64) string {
	return fmt.Sprintf("%020d", n)
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}
