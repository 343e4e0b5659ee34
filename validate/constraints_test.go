package validate

import (
	"strings"
	"testing"

	"github.com/unkn0wn-root/toon"
)

func TestValidateValueWithinLimitsOk(t *testing.T) {
	v := toon.Array([]toon.Value{toon.String("ok"), toon.Int(1)})
	if err := ValidateValue(v, Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateValueStringTooLong(t *testing.T) {
	v := toon.String(strings.Repeat("a", 10))
	err := ValidateValue(v, Constraints{MaxStringLen: 5, MaxArrayLen: 10, MaxObjectLen: 10, MaxDepth: 10})
	cv, ok := err.(*toon.ConstraintViolationError)
	if !ok {
		t.Fatalf("expected *toon.ConstraintViolationError, got %T: %v", err, err)
	}
	if cv.Kind != toon.ConstraintStringLength || cv.Limit != 5 || cv.Actual != 10 {
		t.Fatalf("unexpected violation: %+v", cv)
	}
}

func TestValidateValueDepthExceeded(t *testing.T) {
	v := toon.Array([]toon.Value{toon.Array([]toon.Value{toon.Array([]toon.Value{toon.Int(1)})})})
	c := Constraints{MaxStringLen: 10, MaxArrayLen: 10, MaxObjectLen: 10, MaxDepth: 2}
	err := ValidateValue(v, c)
	cv, ok := err.(*toon.ConstraintViolationError)
	if !ok {
		t.Fatalf("expected *toon.ConstraintViolationError, got %T: %v", err, err)
	}
	if cv.Kind != toon.ConstraintDepth {
		t.Fatalf("expected depth violation, got %+v", cv)
	}
}

func TestValidateValueArrayTooLong(t *testing.T) {
	items := make([]toon.Value, 5)
	for i := range items {
		items[i] = toon.Int(int64(i))
	}
	c := Constraints{MaxStringLen: 10, MaxArrayLen: 3, MaxObjectLen: 10, MaxDepth: 10}
	err := ValidateValue(toon.Array(items), c)
	cv, ok := err.(*toon.ConstraintViolationError)
	if !ok {
		t.Fatalf("expected *toon.ConstraintViolationError, got %T: %v", err, err)
	}
	if cv.Kind != toon.ConstraintArrayLength || cv.Actual != 5 || cv.Limit != 3 {
		t.Fatalf("unexpected violation: %+v", cv)
	}
}
