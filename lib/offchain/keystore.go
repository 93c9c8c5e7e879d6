package offchain

import (
	"sync"

	"boscoin.io/rankchoice/lib/common/keypair"
)

// KeyPurpose is the key type the reconciler asks the keystore for.
const KeyPurpose string = "rank"

// Keystore hands out signing capabilities by purpose. The reconciler only
// ever sees the `keypair.Signer`, never the secret.
type Keystore interface {
	Signer(purpose string) (keypair.Signer, bool)
}

type MemoryKeystore struct {
	sync.RWMutex
	signers map[string]keypair.Signer
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{
		signers: map[string]keypair.Signer{},
	}
}

func (k *MemoryKeystore) Add(purpose string, signer keypair.Signer) {
	k.Lock()
	defer k.Unlock()

	k.signers[purpose] = signer
}

func (k *MemoryKeystore) Remove(purpose string) {
	k.Lock()
	defer k.Unlock()

	delete(k.signers, purpose)
}

func (k *MemoryKeystore) Signer(purpose string) (keypair.Signer, bool) {
	k.RLock()
	defer k.RUnlock()

	signer, found := k.signers[purpose]
	return signer, found
}
