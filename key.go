package memoize

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// maxPlainKeyLen bounds stored key size, longer encodings are digested.
const maxPlainKeyLen = 128

// DeriveKey maps an argument tuple to a stable memoization key.
//
// The tuple is encoded as a canonical JSON array in argument order, with map
// keys sorted, so tuples that are deeply equal by value always produce the
// same key regardless of object identity. Arguments that cannot be serialized
// (functions, channels, cyclic structures) fail with a KeyDerivationError
// rather than silently collapsing distinct tuples onto one key.
//
// Encodings longer than an internal bound are replaced with their 64-bit
// digest together with the encoded length, keeping keys short while still
// covering the full canonical form.
//
// Known limitation: values that serialize identically are treated as equal
// even when their Go types differ, e.g. int(5) and float64(5) share a key.
func DeriveKey(args ...interface{}) (string, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return "", KeyDerivationError{cause: err}
	}

	if len(raw) <= maxPlainKeyLen {
		return string(raw), nil
	}

	return "x:" + strconv.FormatUint(xxhash.Sum64(raw), 16) + ":" + strconv.Itoa(len(raw)), nil
}
