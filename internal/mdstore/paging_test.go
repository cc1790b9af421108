package mdstore

import "testing"

func TestEncodeDecodeOffsetRoundTrip(t *testing.T) {
	for _, want := range []int{0, 1, 42, 1000} {
		token := encodeOffset(want)
		got := decodeOffset(token)
		if got != want {
			t.Errorf("decodeOffset(encodeOffset(%d)) = %d", want, got)
		}
	}
}

func TestDecodeOffset_EmptyToken(t *testing.T) {
	if got := decodeOffset(""); got != 0 {
		t.Errorf("decodeOffset(\"\") = %d, want 0", got)
	}
}

func TestDecodeOffset_Garbage(t *testing.T) {
	if got := decodeOffset("not-a-valid-token!!"); got != 0 {
		t.Errorf("decodeOffset(garbage) = %d, want 0", got)
	}
}

func TestDecodeOffset_NegativeRejected(t *testing.T) {
	if got := decodeOffset(encodeOffset(-5)); got != 0 {
		t.Errorf("decodeOffset(negative) = %d, want 0", got)
	}
}
