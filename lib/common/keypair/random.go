package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random creates a new keypair; it panics when the random source fails.
func Random() *Full {
	if kp, err := stellar.Random(); err != nil {
		panic(err)
	} else {
		return kp
	}
}
