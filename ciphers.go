// Package ciphers composes block ciphers, modes of operation, padding
// schemes, MAC constructions and the ZUC stream cipher into a byte oriented
// library surface. The block cipher and hash primitives themselves are
// consumed as capabilities: the standard library for AES, DES and TDES and
// emmansun/gmsm for the GM algorithms.
package ciphers

import (
	"crypto/aes"
	goCipher "crypto/cipher"
	"crypto/des"
	"errors"
	"strconv"

	"github.com/aacfactory/ciphers/mode"
	"github.com/aacfactory/ciphers/padding"
	"github.com/emmansun/gmsm/sm4"
)

type Algorithm int

const (
	AES Algorithm = iota
	DES
	TDES
	SM4
)

func (a Algorithm) String() string {
	switch a {
	case AES:
		return "AES"
	case DES:
		return "DES"
	case TDES:
		return "TDES"
	case SM4:
		return "SM4"
	}
	return "UNKNOWN"
}

// BlockSize returns the algorithm's block length in bytes.
func (a Algorithm) BlockSize() int {
	switch a {
	case DES, TDES:
		return des.BlockSize
	default:
		return aes.BlockSize
	}
}

// KeySizes returns the accepted key lengths in bytes. TDES accepts both
// 2-key (16 byte) and 3-key (24 byte) keying.
func (a Algorithm) KeySizes() []int {
	switch a {
	case AES:
		return []int{16, 24, 32}
	case DES:
		return []int{8}
	case TDES:
		return []int{16, 24}
	case SM4:
		return []int{16}
	}
	return nil
}

var ErrUnknownAlgorithm = errors.New("ciphers: unknown algorithm")

type KeySizeError int

func (e KeySizeError) Error() string {
	return "ciphers: invalid key size " + strconv.Itoa(int(e))
}

// NewBlock constructs the block cipher capability for a under key. The key
// length is validated against the algorithm's accepted set; an invalid
// length fails, never silently truncated or padded. The key schedule is
// computed once here and reused for every block.
func NewBlock(a Algorithm, key []byte) (goCipher.Block, error) {
	ok := false
	for _, n := range a.KeySizes() {
		if len(key) == n {
			ok = true
			break
		}
	}
	if !ok {
		if a.KeySizes() == nil {
			return nil, ErrUnknownAlgorithm
		}
		return nil, KeySizeError(len(key))
	}
	switch a {
	case AES:
		return aes.NewCipher(key)
	case DES:
		return des.NewCipher(key)
	case TDES:
		if len(key) == 16 {
			// 2-key keying: the third sub-key repeats the first
			k := make([]byte, 24)
			copy(k, key)
			copy(k[16:], key[:8])
			return des.NewTripleDESCipher(k)
		}
		return des.NewTripleDESCipher(key)
	case SM4:
		return sm4.NewCipher(key)
	}
	return nil, ErrUnknownAlgorithm
}

// NewEncryptor binds a keyed block cipher to a mode of operation and padding
// scheme and returns a streaming encryption context. See mode.NewEncryptor
// for the iv and padding rules.
func NewEncryptor(a Algorithm, key, iv []byte, m mode.Mode, pad padding.Scheme) (*mode.Encryptor, error) {
	b, err := NewBlock(a, key)
	if err != nil {
		return nil, err
	}
	return mode.NewEncryptor(b, m, iv, pad)
}

// NewDecryptor is the decryption counterpart of NewEncryptor.
func NewDecryptor(a Algorithm, key, iv []byte, m mode.Mode, pad padding.Scheme) (*mode.Decryptor, error) {
	b, err := NewBlock(a, key)
	if err != nil {
		return nil, err
	}
	return mode.NewDecryptor(b, m, iv, pad)
}

// Encrypt encrypts msg in one shot.
func Encrypt(a Algorithm, key, iv []byte, m mode.Mode, pad padding.Scheme, msg []byte) ([]byte, error) {
	enc, err := NewEncryptor(a, key, iv, m, pad)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	head, err := enc.Update(msg)
	if err != nil {
		return nil, err
	}
	tail, err := enc.Finalize()
	if err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}

// Decrypt decrypts msg in one shot.
func Decrypt(a Algorithm, key, iv []byte, m mode.Mode, pad padding.Scheme, msg []byte) ([]byte, error) {
	dec, err := NewDecryptor(a, key, iv, m, pad)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	head, err := dec.Update(msg)
	if err != nil {
		return nil, err
	}
	tail, err := dec.Finalize()
	if err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}
