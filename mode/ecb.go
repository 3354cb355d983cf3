package mode

import (
	goCipher "crypto/cipher"
)

// Electronic codebook: every block is transformed independently, with no
// chaining state. Block aligned runs are therefore parallelizable, though
// this implementation processes them sequentially.

type ecbEncrypter struct {
	b         goCipher.Block
	blockSize int
}

func (x *ecbEncrypter) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Encrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *ecbEncrypter) wipe() {}

type ecbDecrypter struct {
	b         goCipher.Block
	blockSize int
}

func (x *ecbDecrypter) blocks(dst, src []byte) {
	for len(src) > 0 {
		x.b.Decrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func (x *ecbDecrypter) wipe() {}
