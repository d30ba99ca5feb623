package value

import (
	"math"
	"testing"
)

func TestNumberStringIntegerHasNoDecimalPoint(t *testing.T) {
	if got := Number(3).String(); got != "3" {
		t.Fatalf("Number(3).String() = %q; want %q", got, "3")
	}
	if got := Number(-12).String(); got != "-12" {
		t.Fatalf("Number(-12).String() = %q; want %q", got, "-12")
	}
}

func TestNumberStringFractional(t *testing.T) {
	if got := Number(3.25).String(); got != "3.25" {
		t.Fatalf("Number(3.25).String() = %q; want %q", got, "3.25")
	}
}

func TestNumberStringSpecials(t *testing.T) {
	if got := Number(math.NaN()).String(); got != "nan" {
		t.Fatalf("Number(NaN).String() = %q; want %q", got, "nan")
	}
	if got := Number(math.Inf(1)).String(); got != "inf" {
		t.Fatalf("Number(+Inf).String() = %q; want %q", got, "inf")
	}
	if got := Number(math.Inf(-1)).String(); got != "-inf" {
		t.Fatalf("Number(-Inf).String() = %q; want %q", got, "-inf")
	}
}

func TestTruthiness(t *testing.T) {
	truthy := []Value{Boolean(true), Number(0), String(""), Number(math.NaN())}
	for _, v := range truthy {
		if !Truthiness(v) {
			t.Fatalf("Truthiness(%v) = false; want true", v)
		}
	}
	falsy := []Value{Nil{}, Boolean(false)}
	for _, v := range falsy {
		if Truthiness(v) {
			t.Fatalf("Truthiness(%v) = true; want false", v)
		}
	}
}

func TestEqualNaNIsNeverEqual(t *testing.T) {
	n := Number(math.NaN())
	if Equal(n, n) {
		t.Fatalf("NaN must not equal itself")
	}
}

func TestEqualCrossTagIsFalse(t *testing.T) {
	if Equal(Number(0), String("")) {
		t.Fatalf("cross-tag values must never be equal")
	}
	if Equal(Number(0), Boolean(false)) {
		t.Fatalf("cross-tag values must never be equal")
	}
}

func TestEqualSameTagSameValue(t *testing.T) {
	if !Equal(String("hi"), String("hi")) {
		t.Fatalf("equal strings must compare equal")
	}
	if !Equal(Number(2), Number(2)) {
		t.Fatalf("equal numbers must compare equal")
	}
}

func TestNaNIsUnorderedWithEverything(t *testing.T) {
	n := Number(math.NaN())
	five := Number(5)

	if LessThan(n, five) {
		t.Fatalf("NaN < 5 must be false")
	}
	if GreaterThan(n, five) {
		t.Fatalf("NaN > 5 must be false")
	}
	if LessOrEqual(n, five) {
		t.Fatalf("NaN <= 5 must be false")
	}
	if GreaterOrEqual(n, five) {
		t.Fatalf("NaN >= 5 must be false")
	}
	if LessOrEqual(n, n) {
		t.Fatalf("NaN <= NaN must be false")
	}
	if GreaterOrEqual(n, n) {
		t.Fatalf("NaN >= NaN must be false")
	}
}

func TestLessOrEqualAndGreaterOrEqual(t *testing.T) {
	if !LessOrEqual(Number(2), Number(2)) {
		t.Fatalf("2 <= 2 must be true")
	}
	if !GreaterOrEqual(Number(2), Number(2)) {
		t.Fatalf("2 >= 2 must be true")
	}
	if LessOrEqual(Number(3), Number(2)) {
		t.Fatalf("3 <= 2 must be false")
	}
	if GreaterOrEqual(Number(2), Number(3)) {
		t.Fatalf("2 >= 3 must be false")
	}
}

func TestArithmetic(t *testing.T) {
	if got := Add(Number(1), Number(2)); got != Number(3) {
		t.Fatalf("Add(1,2) = %v; want 3", got)
	}
	if got := Add(String("a"), String("b")); got != String("ab") {
		t.Fatalf("Add(a,b) = %v; want ab", got)
	}
	if got := Sub(Number(5), Number(2)); got != Number(3) {
		t.Fatalf("Sub(5,2) = %v; want 3", got)
	}
	if got := Mul(Number(3), Number(4)); got != Number(12) {
		t.Fatalf("Mul(3,4) = %v; want 12", got)
	}
}

func TestDivByZeroIsInfNotPanic(t *testing.T) {
	got := Div(Number(1), Number(0))
	n, ok := got.(Number)
	if !ok || !math.IsInf(float64(n), 1) {
		t.Fatalf("Div(1,0) = %v; want +Inf", got)
	}
}

func TestArithmeticTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for mismatched operand types")
		}
	}()
	Add(Number(1), String("x"))
}
