package mdserver

import "testing"

func TestBoolOrDefault(t *testing.T) {
	if got := boolOrDefault(nil, true); got != true {
		t.Errorf("boolOrDefault(nil, true) = %v, want true", got)
	}
	if got := boolOrDefault(nil, false); got != false {
		t.Errorf("boolOrDefault(nil, false) = %v, want false", got)
	}
	v := false
	if got := boolOrDefault(&v, true); got != false {
		t.Errorf("boolOrDefault(&false, true) = %v, want false (explicit value wins)", got)
	}
}
