// Package mode implements the block cipher modes of operation as streaming
// contexts over a cipher.Block capability: ECB, CBC, CFB, OFB and CTR.
//
// A context is created bound to a key, an IV and a padding scheme, consumes
// input through Update in chunks of arbitrary size and is flushed exactly
// once through Finalize, after which it is terminal. Close releases the
// chaining registers and any retained input.
package mode

import (
	goCipher "crypto/cipher"
	"errors"
	"strconv"

	"github.com/aacfactory/ciphers/internal/subtle"
	"github.com/aacfactory/ciphers/padding"
)

type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
	CTR
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	}
	return "UNKNOWN"
}

var (
	ErrUnknownMode      = errors.New("mode: unknown mode of operation")
	ErrIVNotSupported   = errors.New("mode: mode does not take an iv")
	ErrContextFinalized = errors.New("mode: context is finalized")
	ErrNotFullBlocks    = errors.New("mode: input is not a multiple of the block size")
)

type IVSizeError int

func (e IVSizeError) Error() string {
	return "mode: invalid iv size " + strconv.Itoa(int(e))
}

// worker is the per-mode chaining step. blocks processes a block aligned run
// of input, src and dst of equal length and a multiple of the block size.
type worker interface {
	blocks(dst, src []byte)
	wipe()
}

// streamWorker is implemented by the keystream modes (CFB, OFB, CTR), which
// can additionally produce a final segment shorter than one block.
type streamWorker interface {
	worker
	tail(dst, src []byte)
}

func newWorker(b goCipher.Block, m Mode, iv []byte, decrypt bool) (worker, error) {
	blockSize := b.BlockSize()
	if m == ECB {
		if len(iv) != 0 {
			return nil, ErrIVNotSupported
		}
	} else if len(iv) != blockSize {
		return nil, IVSizeError(len(iv))
	}
	switch m {
	case ECB:
		if decrypt {
			return &ecbDecrypter{b: b, blockSize: blockSize}, nil
		}
		return &ecbEncrypter{b: b, blockSize: blockSize}, nil
	case CBC:
		if decrypt {
			return newCBCDecrypter(b, iv), nil
		}
		return newCBCEncrypter(b, iv), nil
	case CFB:
		return newCFB(b, iv, decrypt), nil
	case OFB:
		return newOFB(b, iv), nil
	case CTR:
		return newCTR(b, iv), nil
	}
	return nil, ErrUnknownMode
}

func defaultPadding(m Mode) padding.Scheme {
	if m == ECB || m == CBC {
		return padding.PKCS7
	}
	return padding.None
}

type context struct {
	w         worker
	blockSize int
	pad       padding.Scheme
	buf       []byte
	n         int
	decrypt   bool
	finalized bool
}

func newContext(b goCipher.Block, m Mode, iv []byte, pad padding.Scheme, decrypt bool) (*context, error) {
	w, err := newWorker(b, m, iv, decrypt)
	if err != nil {
		return nil, err
	}
	if pad == nil {
		pad = defaultPadding(m)
	}
	return &context{
		w:         w,
		blockSize: b.BlockSize(),
		pad:       pad,
		buf:       make([]byte, b.BlockSize()),
		decrypt:   decrypt,
	}, nil
}

func (c *context) padded() bool {
	return c.pad != padding.None
}

// withheld reports how many trailing bytes Update must keep back given total
// unprocessed bytes. Decryption with a padding scheme always withholds the
// final block: it can only be emitted by Finalize after validation.
func (c *context) emittable(total int) int {
	if c.decrypt && c.padded() {
		if total == 0 {
			return 0
		}
		return (total - 1) / c.blockSize * c.blockSize
	}
	return total / c.blockSize * c.blockSize
}

func (c *context) update(in []byte) ([]byte, error) {
	if c.finalized {
		return nil, ErrContextFinalized
	}
	total := c.n + len(in)
	emit := c.emittable(total)
	if emit == 0 {
		c.n += copy(c.buf[c.n:], in)
		return nil, nil
	}
	out := make([]byte, emit)
	o := 0
	src := in
	for o < emit {
		if c.n == 0 {
			run := emit - o
			if aligned := len(src) / c.blockSize * c.blockSize; aligned < run {
				run = aligned
			}
			c.w.blocks(out[o:o+run], src[:run])
			src = src[run:]
			o += run
			continue
		}
		t := copy(c.buf[c.n:c.blockSize], src)
		c.n += t
		src = src[t:]
		c.w.blocks(out[o:o+c.blockSize], c.buf[:c.blockSize])
		c.n = 0
		o += c.blockSize
	}
	c.n += copy(c.buf[c.n:], src)
	return out, nil
}

func (c *context) finalize() ([]byte, error) {
	if c.finalized {
		return nil, ErrContextFinalized
	}
	c.finalized = true
	rem := c.buf[:c.n]
	if c.decrypt {
		return c.finalizeDecrypt(rem)
	}
	return c.finalizeEncrypt(rem)
}

func (c *context) finalizeEncrypt(rem []byte) ([]byte, error) {
	if !c.padded() {
		if len(rem) == 0 {
			return nil, nil
		}
		sw, ok := c.w.(streamWorker)
		if !ok {
			return nil, ErrNotFullBlocks
		}
		out := make([]byte, len(rem))
		sw.tail(out, rem)
		return out, nil
	}
	data := c.pad.Pad(rem, c.blockSize)
	out := make([]byte, len(data))
	c.w.blocks(out, data)
	return out, nil
}

func (c *context) finalizeDecrypt(rem []byte) ([]byte, error) {
	if !c.padded() {
		if len(rem) == 0 {
			return nil, nil
		}
		sw, ok := c.w.(streamWorker)
		if !ok {
			return nil, ErrNotFullBlocks
		}
		out := make([]byte, len(rem))
		sw.tail(out, rem)
		return out, nil
	}
	if len(rem) == 0 {
		// a padded message carries at least one block
		return nil, padding.ErrInvalid
	}
	if len(rem) != c.blockSize {
		return nil, ErrNotFullBlocks
	}
	last := make([]byte, c.blockSize)
	c.w.blocks(last, rem)
	return c.pad.Unpad(last, c.blockSize)
}

func (c *context) close() {
	c.finalized = true
	subtle.Wipe(c.buf)
	c.n = 0
	c.w.wipe()
}

// Encryptor is a streaming encryption context. It is not safe for concurrent
// use; each goroutine needs its own instance.
type Encryptor struct {
	context
}

// NewEncryptor wraps the block cipher b in the given mode of operation.
// ECB takes a nil iv; CBC, CFB and OFB take an iv of exactly one block; CTR
// takes the initial counter block (nonce plus counter). A nil pad selects
// PKCS#7 for the block modes and no padding for the keystream modes.
func NewEncryptor(b goCipher.Block, m Mode, iv []byte, pad padding.Scheme) (*Encryptor, error) {
	c, err := newContext(b, m, iv, pad, false)
	if err != nil {
		return nil, err
	}
	return &Encryptor{context: *c}, nil
}

// Update absorbs in, encrypts every complete block available and returns the
// produced ciphertext, which is empty when everything was buffered.
func (e *Encryptor) Update(in []byte) ([]byte, error) {
	return e.update(in)
}

// Finalize applies the padding scheme to the retained tail, encrypts it and
// returns the final ciphertext. The context is terminal afterwards.
func (e *Encryptor) Finalize() ([]byte, error) {
	return e.finalize()
}

// Close wipes the chaining register and retained input. The context rejects
// further use. Close may be called at any point and more than once.
func (e *Encryptor) Close() {
	e.close()
}

// Decryptor is a streaming decryption context. It is not safe for concurrent
// use; each goroutine needs its own instance.
type Decryptor struct {
	context
}

// NewDecryptor wraps the block cipher b in the given mode of operation for
// decryption. Parameters follow NewEncryptor.
func NewDecryptor(b goCipher.Block, m Mode, iv []byte, pad padding.Scheme) (*Decryptor, error) {
	c, err := newContext(b, m, iv, pad, true)
	if err != nil {
		return nil, err
	}
	return &Decryptor{context: *c}, nil
}

// Update absorbs in and returns the decrypted blocks that are safe to emit.
// When a padding scheme is active the final block is withheld until Finalize
// validates it.
func (d *Decryptor) Update(in []byte) ([]byte, error) {
	return d.update(in)
}

// Finalize decrypts the withheld tail, validates and strips the padding and
// returns the remaining plaintext. It fails with padding.ErrInvalid on a
// malformed final block. The context is terminal afterwards.
func (d *Decryptor) Finalize() ([]byte, error) {
	return d.finalize()
}

// Close wipes the chaining register and retained input. The context rejects
// further use. Close may be called at any point and more than once.
func (d *Decryptor) Close() {
	d.close()
}
