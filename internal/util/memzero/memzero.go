// Package memzero wipes buffers that held key material or decrypted state.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros. It is best-effort: copies made elsewhere,
// including by the garbage collector, are not reached.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
