package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nutritrack/internal/cryptox"
)

// EncryptedStore seals blobs before handing them to the wrapped store.
//
// Stored layout is salt || nonce || ciphertext. Writes reuse one random salt
// per EncryptedStore so the argon2 derivation runs once; reads derive (and
// cache) the key for whatever salt the blob carries.
type EncryptedStore struct {
	next       Store
	passphrase []byte

	mu      sync.Mutex
	keys    map[string][]byte
	rawSalt []byte
}

// NewEncryptedStore wraps next, deriving keys from passphrase.
func NewEncryptedStore(next Store, passphrase string) *EncryptedStore {
	return &EncryptedStore{
		next:       next,
		passphrase: []byte(passphrase),
		keys:       make(map[string][]byte),
	}
}

func (e *EncryptedStore) keyFor(salt []byte) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if k, ok := e.keys[string(salt)]; ok {
		return k
	}
	k := cryptox.DeriveKey(e.passphrase, salt)
	e.keys[string(salt)] = k
	return k
}

func (e *EncryptedStore) writeSalt() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rawSalt == nil {
		salt, err := cryptox.RandomBytes(cryptox.SaltSize)
		if err != nil {
			return nil, fmt.Errorf("salt: %w", err)
		}
		e.rawSalt = salt
	}
	return e.rawSalt, nil
}

func (e *EncryptedStore) seal(data []byte) ([]byte, error) {
	salt, err := e.writeSalt()
	if err != nil {
		return nil, err
	}
	sealed, err := cryptox.Seal(e.keyFor(salt), data)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	out := make([]byte, 0, len(salt)+len(sealed))
	out = append(out, salt...)
	return append(out, sealed...), nil
}

func (e *EncryptedStore) Get(ctx context.Context, c Collection, userID string) ([]byte, error) {
	blob, err := e.next.Get(ctx, c, userID)
	if err != nil || blob == nil {
		return blob, err
	}
	if len(blob) < cryptox.SaltSize {
		return nil, fmt.Errorf("open blob[%s/%s]: %w", c, userID, cryptox.ErrShortBlob)
	}
	salt, sealed := blob[:cryptox.SaltSize], blob[cryptox.SaltSize:]
	plain, err := cryptox.Open(e.keyFor(salt), sealed)
	if err != nil {
		return nil, fmt.Errorf("open blob[%s/%s]: %w", c, userID, err)
	}
	return plain, nil
}

func (e *EncryptedStore) Put(ctx context.Context, c Collection, userID string, data []byte) error {
	sealed, err := e.seal(data)
	if err != nil {
		return err
	}
	return e.next.Put(ctx, c, userID, sealed)
}

func (e *EncryptedStore) PutBatch(ctx context.Context, userID string, blobs ...Blob) error {
	sealed := make([]Blob, 0, len(blobs))
	for _, b := range blobs {
		data, err := e.seal(b.Data)
		if err != nil {
			return err
		}
		sealed = append(sealed, Blob{Collection: b.Collection, Data: data})
	}
	return e.next.PutBatch(ctx, userID, sealed...)
}
