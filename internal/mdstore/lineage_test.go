package mdstore

import (
	"testing"

	"github.com/mlmd/store/internal/mderrors"
)

func int32ptr(v int32) *int32 { return &v }

func TestClampMaxHops_Omitted(t *testing.T) {
	got, err := clampMaxHops(nil)
	if err != nil {
		t.Fatalf("clampMaxHops(nil): %v", err)
	}
	if got != kMax {
		t.Errorf("got %d, want kMax=%d", got, kMax)
	}
}

func TestClampMaxHops_Negative(t *testing.T) {
	if _, err := clampMaxHops(int32ptr(-1)); !mderrors.IsInvalidArgument(err) {
		t.Fatalf("err = %v, want InvalidArgument", err)
	}
}

func TestClampMaxHops_ExceedsCap(t *testing.T) {
	got, err := clampMaxHops(int32ptr(kMax + 100))
	if err != nil {
		t.Fatalf("clampMaxHops: %v", err)
	}
	if got != kMax {
		t.Errorf("got %d, want clamped to kMax=%d", got, kMax)
	}
}

func TestClampMaxHops_WithinRange(t *testing.T) {
	got, err := clampMaxHops(int32ptr(5))
	if err != nil {
		t.Fatalf("clampMaxHops: %v", err)
	}
	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestClampMaxHops_Zero(t *testing.T) {
	got, err := clampMaxHops(int32ptr(0))
	if err != nil {
		t.Fatalf("clampMaxHops: %v", err)
	}
	if got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
