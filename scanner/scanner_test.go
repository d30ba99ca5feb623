package scanner

import "testing"

func TestRingEnqueueDequeue(t *testing.T) {
	r := newRing(3)

	if !r.isEmpty() {
		t.Fatalf("new ring should be empty")
	}
	if _, ok := r.dequeue(); ok {
		t.Fatalf("dequeue on empty ring should fail")
	}

	r.enqueue('a')
	r.enqueue('b')
	r.enqueue('c')

	if !r.isFull() {
		t.Fatalf("ring should be full after 3 enqueues of capacity 3")
	}

	for _, want := range []rune{'a', 'b', 'c'} {
		got, ok := r.dequeue()
		if !ok || got != want {
			t.Fatalf("dequeue() = %q, %v; want %q, true", got, ok, want)
		}
	}
	if !r.isEmpty() {
		t.Fatalf("ring should be empty after draining")
	}
}

func TestRingPeekDoesNotConsume(t *testing.T) {
	r := newRing(4)
	r.enqueue('x')
	r.enqueue('y')

	for i := 0; i < 3; i++ {
		if v, ok := r.peek(0); !ok || v != 'x' {
			t.Fatalf("peek(0) = %q, %v; want 'x', true", v, ok)
		}
	}
	if v, ok := r.peek(1); !ok || v != 'y' {
		t.Fatalf("peek(1) = %q, %v; want 'y', true", v, ok)
	}
	if _, ok := r.peek(2); ok {
		t.Fatalf("peek(2) should miss on a 2-item buffer")
	}
}

func TestScannerAdvancePeekEOF(t *testing.T) {
	s := New("ab")

	if got := s.Peek(0); got != 'a' {
		t.Fatalf("Peek(0) = %q; want 'a'", got)
	}
	if got := s.Peek(0); got != 'a' {
		t.Fatalf("Peek(0) should be idempotent until Advance, got %q", got)
	}
	if got := s.Advance(); got != 'a' {
		t.Fatalf("Advance() = %q; want 'a'", got)
	}
	if got := s.Advance(); got != 'b' {
		t.Fatalf("Advance() = %q; want 'b'", got)
	}
	if got := s.Advance(); got != EOF {
		t.Fatalf("Advance() at end = %q; want EOF", got)
	}
	if got := s.Advance(); got != EOF {
		t.Fatalf("Advance() past end should keep returning EOF, got %q", got)
	}
}

func TestScannerTracksLines(t *testing.T) {
	s := New("a\nb\nc")

	if s.Line() != 1 {
		t.Fatalf("Line() = %d; want 1", s.Line())
	}
	s.Advance() // 'a'
	s.Advance() // '\n'
	if s.Line() != 2 {
		t.Fatalf("Line() after first newline = %d; want 2", s.Line())
	}
	s.Advance() // 'b'
	s.Advance() // '\n'
	if s.Line() != 3 {
		t.Fatalf("Line() after second newline = %d; want 3", s.Line())
	}
}

func TestScannerDecodesUTF8(t *testing.T) {
	s := New("café")
	var got []rune
	for {
		r := s.Advance()
		if r == EOF {
			break
		}
		got = append(got, r)
	}
	want := []rune("café")
	if len(got) != len(want) {
		t.Fatalf("decoded %d scalars; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scalar %d = %q; want %q", i, got[i], want[i])
		}
	}
}
