// Package invitecode generates the human-shareable codes invitations are
// redeemed with.
package invitecode

import (
	"crypto/rand"
	"math/big"
)

// Length is the number of symbols in a code.
const Length = 8

// alphabet is 32 symbols: uppercase letters and digits with the visually
// ambiguous glyphs (O, 0, I, 1) removed, so codes survive being read aloud
// or copied by hand.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// New returns a fresh random code. The draw is uniform over the alphabet;
// uniqueness is the caller's concern (the invitation store retries on a
// duplicate-key insert).
func New() string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken;
			// nothing sensible to do but stop.
			panic("invitecode: crypto/rand unavailable: " + err.Error())
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}

// Valid reports whether s has the right length and draws only from the code
// alphabet. Used to reject malformed codes before hitting the store.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		found := false
		for j := 0; j < len(alphabet); j++ {
			if s[i] == alphabet[j] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
