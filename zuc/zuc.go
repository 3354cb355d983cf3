// Package zuc implements the ZUC-128 stream cipher of GM/T 0001-2012,
// including the 128-EEA3 confidentiality and 128-EIA3 integrity derivations.
package zuc

import (
	"errors"
	"math/bits"
	"strconv"
)

const (
	// KeySize is the ZUC-128 key length in bytes.
	KeySize = 16
	// IVSize is the ZUC-128 initialization vector length in bytes.
	IVSize = 16

	initRounds = 32
	lfsrMask   = 0x7fffffff
)

type KeySizeError int

func (e KeySizeError) Error() string {
	return "zuc: invalid key size " + strconv.Itoa(int(e))
}

type IVSizeError int

func (e IVSizeError) Error() string {
	return "zuc: invalid iv size " + strconv.Itoa(int(e))
}

// ErrFinalized is returned when a MAC context is used after its tag has been
// produced.
var ErrFinalized = errors.New("zuc: context is finalized")

// state is the ZUC keystream generator: sixteen 31-bit LFSR cells and the
// two registers of the nonlinear function F. It advances one step per
// produced keystream word.
type state struct {
	lfsr   [16]uint32
	r1, r2 uint32
}

func newState(key, iv []byte) (*state, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	if len(iv) != IVSize {
		return nil, IVSizeError(len(iv))
	}
	s := new(state)
	s.load(key, iv)
	s.initialize()
	return s, nil
}

// load packs key byte, 15-bit constant and iv byte into each LFSR cell.
func (s *state) load(key, iv []byte) {
	for i := 0; i < 16; i++ {
		s.lfsr[i] = uint32(key[i])<<23 | uint32(kd[i])<<8 | uint32(iv[i])
	}
	s.r1 = 0
	s.r2 = 0
}

// initialize runs the 32 initialization rounds, feeding W>>1 into the LFSR
// and discarding the output, then executes the single first working step.
func (s *state) initialize() {
	for i := 0; i < initRounds; i++ {
		x0, x1, x2, _ := s.bitReorganization()
		w := s.f(x0, x1, x2)
		s.lfsrStep(w >> 1)
	}
	x0, x1, x2, _ := s.bitReorganization()
	s.f(x0, x1, x2)
	s.lfsrStep(0)
}

// rot31 rotates a 31-bit value left by k.
func rot31(a uint32, k uint) uint32 {
	return (a<<k | a>>(31-k)) & lfsrMask
}

// addMod31 computes a+b mod 2^31-1.
func addMod31(a, b uint32) uint32 {
	x := a + b
	return (x & lfsrMask) + x>>31
}

// lfsrStep advances the register. u is zero in working mode; in
// initialization mode it carries the folded F output.
func (s *state) lfsrStep(u uint32) {
	v := addMod31(rot31(s.lfsr[0], 8), s.lfsr[0])
	v = addMod31(rot31(s.lfsr[4], 20), v)
	v = addMod31(rot31(s.lfsr[10], 21), v)
	v = addMod31(rot31(s.lfsr[13], 17), v)
	v = addMod31(rot31(s.lfsr[15], 15), v)
	v = addMod31(u, v)
	if v == 0 {
		v = lfsrMask
	}
	copy(s.lfsr[:], s.lfsr[1:])
	s.lfsr[15] = v
}

func (s *state) bitReorganization() (x0, x1, x2, x3 uint32) {
	x0 = (s.lfsr[15]&0x7fff8000)<<1 | s.lfsr[14]&0xffff
	x1 = s.lfsr[9]>>15 | s.lfsr[11]<<16
	x2 = s.lfsr[5]>>15 | s.lfsr[7]<<16
	x3 = s.lfsr[0]>>15 | s.lfsr[2]<<16
	return
}

// f is the nonlinear function; it consumes X0..X2 and updates R1/R2.
func (s *state) f(x0, x1, x2 uint32) uint32 {
	w := (x0 ^ s.r1) + s.r2
	w1 := s.r1 + x1
	w2 := s.r2 ^ x2
	s.r1 = sbox(l1(w1<<16 | w2>>16))
	s.r2 = sbox(l2(w2<<16 | w1>>16))
	return w
}

func l1(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 2) ^ bits.RotateLeft32(x, 10) ^ bits.RotateLeft32(x, 18) ^ bits.RotateLeft32(x, 24)
}

func l2(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 8) ^ bits.RotateLeft32(x, 14) ^ bits.RotateLeft32(x, 22) ^ bits.RotateLeft32(x, 30)
}

func sbox(x uint32) uint32 {
	return uint32(s0[x>>24])<<24 | uint32(s1[x>>16&0xff])<<16 | uint32(s0[x>>8&0xff])<<8 | uint32(s1[x&0xff])
}

// nextWord produces one 32-bit keystream word: bit reorganization, F XOR X3,
// then one working-mode LFSR step, in exactly that order.
func (s *state) nextWord() uint32 {
	x0, x1, x2, x3 := s.bitReorganization()
	z := s.f(x0, x1, x2) ^ x3
	s.lfsrStep(0)
	return z
}

func (s *state) wipe() {
	for i := range s.lfsr {
		s.lfsr[i] = 0
	}
	s.r1 = 0
	s.r2 = 0
}
