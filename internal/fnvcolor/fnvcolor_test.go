// SPDX-License-Identifier: Unlicense OR MIT

package fnvcolor

import "testing"

func TestHashDeterministic(t *testing.T) {
	a := Hash(10, 20, 30)
	b := Hash(10, 20, 30)
	if a != b {
		t.Fatalf("Hash not deterministic: %d != %d", a, b)
	}
}

func TestHashDiffersByByte(t *testing.T) {
	a := Hash(10, 20, 30)
	b := Hash(10, 20, 31)
	if a == b {
		t.Fatal("expected different hash for different blue byte")
	}
}

func TestHashZero(t *testing.T) {
	want := offsetBasis
	for i := 0; i < 3; i++ {
		want *= prime // XOR with a zero byte leaves h unchanged
	}
	if Hash(0, 0, 0) != want {
		t.Fatalf("Hash(0,0,0) = %d, want %d", Hash(0, 0, 0), want)
	}
}
