package ciphers_test

import (
	"bytes"
	"crypto/des"
	"encoding/hex"
	"testing"

	"github.com/aacfactory/ciphers"
	"github.com/aacfactory/ciphers/mode"
	"github.com/aacfactory/ciphers/padding"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestKeySizeValidation(t *testing.T) {
	cases := []struct {
		a    ciphers.Algorithm
		good []int
		bad  []int
	}{
		{ciphers.AES, []int{16, 24, 32}, []int{0, 8, 15, 17, 33}},
		{ciphers.DES, []int{8}, []int{0, 7, 9, 16}},
		{ciphers.TDES, []int{16, 24}, []int{0, 8, 17, 25}},
		{ciphers.SM4, []int{16}, []int{0, 8, 24, 32}},
	}
	for _, tc := range cases {
		for _, n := range tc.good {
			if _, err := ciphers.NewBlock(tc.a, make([]byte, n)); err != nil {
				t.Errorf("%s key size %d: %v", tc.a, n, err)
			}
		}
		for _, n := range tc.bad {
			_, err := ciphers.NewBlock(tc.a, make([]byte, n))
			if err == nil {
				t.Errorf("%s accepted key size %d", tc.a, n)
				continue
			}
			if _, ok := err.(ciphers.KeySizeError); !ok {
				t.Errorf("%s key size %d: error = %T, want ciphers.KeySizeError", tc.a, n, err)
			}
		}
	}
	if _, err := ciphers.NewBlock(ciphers.Algorithm(42), make([]byte, 16)); err != ciphers.ErrUnknownAlgorithm {
		t.Errorf("unknown algorithm = %v, want %v", err, ciphers.ErrUnknownAlgorithm)
	}
}

func TestDESVector(t *testing.T) {
	block, err := ciphers.NewBlock(ciphers.DES, mustHex(t, "133457799bbcdff1"))
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, 8)
	block.Encrypt(dst, mustHex(t, "0123456789abcdef"))
	if want := mustHex(t, "85e813540f0ab405"); !bytes.Equal(dst, want) {
		t.Errorf("des encrypt = %x, want %x", dst, want)
	}
}

// 2-key keying expands K1 K2 into K1 K2 K1.
func TestTDESTwoKeyExpansion(t *testing.T) {
	key := mustHex(t, "0123456789abcdeffedcba9876543210")
	b, err := ciphers.NewBlock(ciphers.TDES, key)
	if err != nil {
		t.Fatal(err)
	}
	full := make([]byte, 24)
	copy(full, key)
	copy(full[16:], key[:8])
	ref, err := des.NewTripleDESCipher(full)
	if err != nil {
		t.Fatal(err)
	}
	src := mustHex(t, "8877665544332211")
	got := make([]byte, 8)
	want := make([]byte, 8)
	b.Encrypt(got, src)
	ref.Encrypt(want, src)
	if !bytes.Equal(got, want) {
		t.Errorf("2-key tdes = %x, want %x", got, want)
	}
}

// 2-key TDES with K1 == K2 degenerates to single DES.
func TestTDESDegeneratesToDES(t *testing.T) {
	k := mustHex(t, "133457799bbcdff1")
	tdes, err := ciphers.NewBlock(ciphers.TDES, append(append([]byte(nil), k...), k...))
	if err != nil {
		t.Fatal(err)
	}
	src := mustHex(t, "0123456789abcdef")
	got := make([]byte, 8)
	tdes.Encrypt(got, src)
	if want := mustHex(t, "85e813540f0ab405"); !bytes.Equal(got, want) {
		t.Errorf("degenerate tdes = %x, want %x", got, want)
	}
}

func TestOneShotRoundTrips(t *testing.T) {
	msg := []byte("a message that is deliberately not block aligned")
	cases := []struct {
		a   ciphers.Algorithm
		key int
	}{
		{ciphers.AES, 16},
		{ciphers.AES, 32},
		{ciphers.DES, 8},
		{ciphers.TDES, 16},
		{ciphers.TDES, 24},
		{ciphers.SM4, 16},
	}
	for _, tc := range cases {
		key := make([]byte, tc.key)
		for i := range key {
			key[i] = byte(i + 1)
		}
		iv := make([]byte, tc.a.BlockSize())
		for i := range iv {
			iv[i] = byte(0xa0 + i)
		}
		ct, err := ciphers.Encrypt(tc.a, key, iv, mode.CBC, padding.PKCS7, msg)
		if err != nil {
			t.Fatalf("%s/%d: encrypt: %v", tc.a, tc.key, err)
		}
		pt, err := ciphers.Decrypt(tc.a, key, iv, mode.CBC, padding.PKCS7, ct)
		if err != nil {
			t.Fatalf("%s/%d: decrypt: %v", tc.a, tc.key, err)
		}
		if !bytes.Equal(pt, msg) {
			t.Errorf("%s/%d: round trip mismatch", tc.a, tc.key)
		}
	}
}

func TestBlockSizes(t *testing.T) {
	if got := ciphers.AES.BlockSize(); got != 16 {
		t.Errorf("aes block size = %d", got)
	}
	if got := ciphers.SM4.BlockSize(); got != 16 {
		t.Errorf("sm4 block size = %d", got)
	}
	if got := ciphers.DES.BlockSize(); got != 8 {
		t.Errorf("des block size = %d", got)
	}
	if got := ciphers.TDES.BlockSize(); got != 8 {
		t.Errorf("tdes block size = %d", got)
	}
}

func TestHMACHelpers(t *testing.T) {
	key := mustHex(t, "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	msg := []byte("Hi There")
	want := mustHex(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")
	if got := ciphers.HMACSum(ciphers.SHA256, key, msg); !bytes.Equal(got, want) {
		t.Errorf("hmac sha256 = %x, want %x", got, want)
	}
	if err := ciphers.HMACVerify(ciphers.SHA256, key, msg, want); err != nil {
		t.Errorf("verify: %v", err)
	}
	for _, h := range []ciphers.Hash{ciphers.MD5, ciphers.SHA1, ciphers.SHA256, ciphers.SHA384, ciphers.SHA512, ciphers.SM3, ciphers.SHA3_256} {
		if h.Hasher() == nil {
			t.Errorf("%s: nil hasher", h)
		}
		tag := ciphers.HMACSum(h, key, msg)
		if err := ciphers.HMACVerify(h, key, msg, tag); err != nil {
			t.Errorf("%s: verify: %v", h, err)
		}
		tag[0] ^= 1
		if err := ciphers.HMACVerify(h, key, msg, tag); err == nil {
			t.Errorf("%s: corrupted tag verified", h)
		}
	}
}

func TestCMACHelpers(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	msg := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")
	want := mustHex(t, "070a16b46b4d4144f79bdd9dd04a287c")
	got, err := ciphers.CMACSum(ciphers.AES, key, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("cmac = %x, want %x", got, want)
	}
	if err := ciphers.CMACVerify(ciphers.AES, key, msg, want); err != nil {
		t.Errorf("verify: %v", err)
	}
	if _, err := ciphers.CMACSum(ciphers.AES, []byte("short"), msg); err == nil {
		t.Error("CMACSum accepted a bad key")
	}
}
