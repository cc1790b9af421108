package mderrors

import "testing"

func TestWrappersCarryTheRightCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"AlreadyExists", AlreadyExists("boom %d", 1), IsAlreadyExists},
		{"NotFound", NotFound("boom"), IsNotFound},
		{"FailedPrecondition", FailedPrecondition("boom"), IsFailedPrecondition},
		{"Aborted", Aborted("boom"), IsAborted},
		{"InvalidArgument", InvalidArgument("boom"), IsInvalidArgument},
	}
	for _, c := range cases {
		if !c.is(c.err) {
			t.Errorf("%s: predicate false for %v", c.name, c.err)
		}
	}
}

func TestPredicates_NilError(t *testing.T) {
	if IsAlreadyExists(nil) || IsNotFound(nil) || IsAborted(nil) || IsInvalidArgument(nil) {
		t.Error("predicates must report false for a nil error")
	}
}

func TestPredicates_CrossCodeMismatch(t *testing.T) {
	err := NotFound("missing")
	if IsAlreadyExists(err) {
		t.Error("a NotFound error must not satisfy IsAlreadyExists")
	}
}
