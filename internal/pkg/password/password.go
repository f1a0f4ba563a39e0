package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every digest.
const Cost = 10

var (
	dummyOnce   sync.Once
	dummyDigest []byte
)

// Hash returns a salted bcrypt digest of plaintext.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func Verify(plaintext, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	return err == nil
}

// Burn spends the same bcrypt work as Verify against a throwaway digest, so a
// lookup miss costs as much as a wrong password.
func Burn(plaintext string) {
	dummyOnce.Do(func() {
		dummyDigest, _ = bcrypt.GenerateFromPassword([]byte("datavista-placeholder"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyDigest, []byte(plaintext))
}
