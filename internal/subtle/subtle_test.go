package subtle

import (
	"bytes"
	"testing"
)

func TestConstantTimeCompare(t *testing.T) {
	cases := []struct {
		x, y []byte
		want int
	}{
		{nil, nil, 1},
		{[]byte{}, []byte{}, 1},
		{[]byte{1, 2, 3}, []byte{1, 2, 3}, 1},
		{[]byte{1, 2, 3}, []byte{1, 2, 4}, 0},
		{[]byte{1, 2, 3}, []byte{1, 2}, 0},
		{[]byte{1, 2}, []byte{1, 2, 3}, 0},
	}
	for _, tc := range cases {
		if got := ConstantTimeCompare(tc.x, tc.y); got != tc.want {
			t.Errorf("ConstantTimeCompare(%x, %x) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestConstantTimeByteEq(t *testing.T) {
	for x := 0; x < 256; x++ {
		for _, y := range []int{0, 1, x, 255} {
			want := 0
			if x == y {
				want = 1
			}
			if got := ConstantTimeByteEq(uint8(x), uint8(y)); got != want {
				t.Fatalf("ConstantTimeByteEq(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestConstantTimeLessOrEq(t *testing.T) {
	cases := []struct{ x, y, want int }{
		{0, 0, 1},
		{0, 1, 1},
		{1, 0, 0},
		{16, 16, 1},
		{17, 16, 0},
		{15, 16, 1},
	}
	for _, tc := range cases {
		if got := ConstantTimeLessOrEq(tc.x, tc.y); got != tc.want {
			t.Errorf("ConstantTimeLessOrEq(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestConstantTimeSelect(t *testing.T) {
	if got := ConstantTimeSelect(1, 7, 9); got != 7 {
		t.Errorf("select(1) = %d, want 7", got)
	}
	if got := ConstantTimeSelect(0, 7, 9); got != 9 {
		t.Errorf("select(0) = %d, want 9", got)
	}
}

func TestXORBytes(t *testing.T) {
	dst := make([]byte, 4)
	n := XORBytes(dst, []byte{0xff, 0x0f, 0xf0, 0xaa}, []byte{0x0f, 0x0f, 0x0f, 0x55})
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	if want := []byte{0xf0, 0x00, 0xff, 0xff}; !bytes.Equal(dst, want) {
		t.Errorf("xor = %x, want %x", dst, want)
	}
	// shorter operand bounds the write
	dst = []byte{1, 2, 3}
	if n = XORBytes(dst, []byte{4, 5}, []byte{6, 7, 8}); n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if !bytes.Equal(dst, []byte{2, 2, 3}) {
		t.Errorf("xor tail = %x", dst)
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	if !bytes.Equal(b, make([]byte, 4)) {
		t.Errorf("wipe left %x", b)
	}
}
