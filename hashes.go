package ciphers

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/aacfactory/ciphers/cmac"
	"github.com/aacfactory/ciphers/hmac"
	"github.com/emmansun/gmsm/sm3"
	"golang.org/x/crypto/sha3"
)

// Hash names a hash capability usable with HMAC.
type Hash int

const (
	MD5 Hash = iota
	SHA1
	SHA256
	SHA384
	SHA512
	SM3
	SHA3_256
)

func (h Hash) String() string {
	switch h {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	case SM3:
		return "SM3"
	case SHA3_256:
		return "SHA3-256"
	}
	return "UNKNOWN"
}

// Hasher returns the constructor of the named hash.
func (h Hash) Hasher() func() hash.Hash {
	switch h {
	case MD5:
		return md5.New
	case SHA1:
		return sha1.New
	case SHA256:
		return sha256.New
	case SHA384:
		return sha512.New384
	case SHA512:
		return sha512.New
	case SM3:
		return sm3.New
	case SHA3_256:
		return sha3.New256
	}
	return nil
}

// HMACSum computes the HMAC tag of msg under key using the named hash.
func HMACSum(h Hash, key, msg []byte) []byte {
	return hmac.Sum(h.Hasher(), key, msg)
}

// HMACVerify checks an HMAC tag in constant time.
func HMACVerify(h Hash, key, msg, tag []byte) error {
	return hmac.Verify(h.Hasher(), key, msg, tag)
}

// CMACSum computes the CMAC tag of msg under the keyed block cipher.
func CMACSum(a Algorithm, key, msg []byte) ([]byte, error) {
	b, err := NewBlock(a, key)
	if err != nil {
		return nil, err
	}
	return cmac.Sum(b, msg)
}

// CMACVerify checks a CMAC tag in constant time.
func CMACVerify(a Algorithm, key, msg, tag []byte) error {
	b, err := NewBlock(a, key)
	if err != nil {
		return err
	}
	return cmac.Verify(b, msg, tag)
}
