package object

import (
	"testing"

	"github.com/ashbyglade/golox/value"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", value.Number(1))

	got, ok := env.Get("x")
	if !ok || got != value.Number(1) {
		t.Fatalf("Get(x) = %v, %v; want 1, true", got, ok)
	}
}

func TestGetWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", value.Number(1))
	inner := NewEnvironment(outer)

	got, ok := inner.Get("x")
	if !ok || got != value.Number(1) {
		t.Fatalf("Get(x) = %v, %v; want 1, true", got, ok)
	}
}

func TestShadowingDoesNotMutateOuter(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", value.Number(1))
	inner := NewEnvironment(outer)
	inner.Define("x", value.Number(2))

	if got, _ := inner.Get("x"); got != value.Number(2) {
		t.Fatalf("inner x = %v; want 2", got)
	}
	if got, _ := outer.Get("x"); got != value.Number(1) {
		t.Fatalf("outer x = %v; want unchanged 1", got)
	}
}

func TestAssignFindsNearestBinding(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", value.Number(1))
	inner := NewEnvironment(outer)

	if ok := inner.Assign("x", value.Number(9)); !ok {
		t.Fatalf("Assign(x) = false; want true")
	}
	if got, _ := outer.Get("x"); got != value.Number(9) {
		t.Fatalf("outer x = %v; want 9", got)
	}
}

func TestAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	if ok := env.Assign("missing", value.Number(1)); ok {
		t.Fatalf("Assign(missing) = true; want false")
	}
}

func TestGetAtWalksExactDepth(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", value.String("global"))
	mid := NewEnvironment(global)
	mid.Define("x", value.String("mid"))
	inner := NewEnvironment(mid)

	if _, ok := inner.GetAt(0, "x"); ok {
		t.Fatalf("GetAt(0, x) should miss: inner frame never defines x")
	}
	if got, ok := inner.GetAt(1, "x"); !ok || got != value.String("mid") {
		t.Fatalf("GetAt(1, x) = %v, %v; want mid, true", got, ok)
	}
	if got, ok := inner.GetAt(2, "x"); !ok || got != value.String("global") {
		t.Fatalf("GetAt(2, x) = %v, %v; want global, true", got, ok)
	}
}

func TestAssignAtWalksExactDepth(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", value.Number(1))
	inner := NewEnvironment(global)

	inner.AssignAt(1, "x", value.Number(42))
	if got, _ := global.Get("x"); got != value.Number(42) {
		t.Fatalf("global x = %v; want 42", got)
	}
}
