//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for usage within rankchoice
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Parse = stellar.Parse

// Signer is the signing capability handed out by a keystore. It never
// exposes the secret seed; `*Full` satisfies it.
type Signer interface {
	Address() string
	Sign(input []byte) ([]byte, error)
}

// MakeSignature makes signature from given hash string
func MakeSignature(signer Signer, networkID []byte, hash string) ([]byte, error) {
	return signer.Sign(append(networkID, []byte(hash)...))
}

// VerifySignature checks that `signature` was made by `address` over the
// given hash.
func VerifySignature(address string, networkID []byte, hash string, signature []byte) error {
	kp, err := stellar.Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(append(networkID, []byte(hash)...), signature)
}

// IsValidAddress reports whether `address` parses as a stellar public
// address.
func IsValidAddress(address string) bool {
	kp, err := stellar.Parse(address)
	if err != nil {
		return false
	}

	_, isFull := kp.(*stellar.Full)
	return !isFull
}
