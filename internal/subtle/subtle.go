// Package subtle implements functions that are often useful in cryptographic
// code but require careful thought to use correctly: comparisons and data
// movement whose timing does not depend on secret values.
package subtle

// ConstantTimeCompare returns 1 if x and y have equal contents and 0
// otherwise. The time taken is a function of the length of the slices and is
// independent of the contents. Both lengths must be known to the call site;
// if they differ the function returns 0 after the length check alone, which
// leaks nothing derived from secret content.
func ConstantTimeCompare(x, y []byte) int {
	if len(x) != len(y) {
		return 0
	}
	var v byte
	for i := 0; i < len(x); i++ {
		v |= x[i] ^ y[i]
	}
	return ConstantTimeByteEq(v, 0)
}

// ConstantTimeSelect returns x if v == 1 and y if v == 0.
// Its behavior is undefined if v takes any other value.
func ConstantTimeSelect(v, x, y int) int { return ^(v-1)&x | (v-1)&y }

// ConstantTimeByteEq returns 1 if x == y and 0 otherwise.
func ConstantTimeByteEq(x, y uint8) int {
	return int((uint32(x^y) - 1) >> 31)
}

// ConstantTimeLessOrEq returns 1 if x <= y and 0 otherwise.
// Its behavior is undefined if x or y are negative or > 2**31 - 1.
func ConstantTimeLessOrEq(x, y int) int {
	x32 := int32(x)
	y32 := int32(y)
	return int(((x32 - y32 - 1) >> 31) & 1)
}

// XORBytes sets dst[i] = x[i] ^ y[i] for all i < n = min(len(x), len(y)) and
// returns n. dst must have length at least n.
func XORBytes(dst, x, y []byte) int {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n == 0 {
		return 0
	}
	_ = dst[n-1]
	for i := 0; i < n; i++ {
		dst[i] = x[i] ^ y[i]
	}
	return n
}

// Wipe zeroizes b. It is used for the scoped release of key material and
// chaining state when a context is destroyed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
