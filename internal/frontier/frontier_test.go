package frontier

import "testing"

func TestFIFO_PushPopOrder(t *testing.T) {
	f := NewFIFO(Unbounded)
	f.Push(State{Node: "a"})
	f.Push(State{Node: "b"})
	f.Push(State{Node: "c"})

	for _, want := range []string{"a", "b", "c"} {
		s, ok := f.Pop()
		if !ok || s.Node != want {
			t.Fatalf("Pop() = %q, ok=%v; want %q", s.Node, ok, want)
		}
	}
	if !f.Empty() {
		t.Error("expected empty frontier")
	}
	if _, ok := f.Pop(); ok {
		t.Error("Pop() on empty frontier should return ok=false")
	}
}

func TestLIFO_PushPopOrder(t *testing.T) {
	f := NewLIFO(Unbounded)
	f.Push(State{Node: "a"})
	f.Push(State{Node: "b"})
	f.Push(State{Node: "c"})

	for _, want := range []string{"c", "b", "a"} {
		s, ok := f.Pop()
		if !ok || s.Node != want {
			t.Fatalf("Pop() = %q, ok=%v; want %q", s.Node, ok, want)
		}
	}
}

func TestFIFO_BoundedEvictsHighestScore(t *testing.T) {
	f := NewFIFO(2)
	f.Push(State{Node: "a", Score: 1})
	f.Push(State{Node: "b", Score: 5})
	f.Push(State{Node: "c", Score: 2})

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}

	var remaining []string
	for !f.Empty() {
		s, _ := f.Pop()
		remaining = append(remaining, s.Node)
	}
	for _, n := range remaining {
		if n == "b" {
			t.Errorf("highest-score element %q should have been evicted", n)
		}
	}
}

func TestPriority_OrdersByScoreAscending(t *testing.T) {
	f := NewPriority(Unbounded)
	f.Push(State{Node: "c", Score: 3})
	f.Push(State{Node: "a", Score: 1})
	f.Push(State{Node: "b", Score: 2})

	for _, want := range []string{"a", "b", "c"} {
		s, ok := f.Pop()
		if !ok || s.Node != want {
			t.Fatalf("Pop() = %q, ok=%v; want %q", s.Node, ok, want)
		}
	}
}

func TestPriority_StableTieBreak(t *testing.T) {
	f := NewPriority(Unbounded)
	f.Push(State{Node: "first", Score: 1})
	f.Push(State{Node: "second", Score: 1})
	f.Push(State{Node: "third", Score: 1})

	for _, want := range []string{"first", "second", "third"} {
		s, ok := f.Pop()
		if !ok || s.Node != want {
			t.Fatalf("Pop() = %q, ok=%v; want %q (stable tie-break)", s.Node, ok, want)
		}
	}
}

func TestPriority_BoundedEvictsHighestScore(t *testing.T) {
	f := NewPriority(2)
	f.Push(State{Node: "a", Score: 1})
	f.Push(State{Node: "b", Score: 10})
	f.Push(State{Node: "c", Score: 2})

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}

	s, _ := f.Pop()
	if s.Node != "a" {
		t.Errorf("Pop() = %q, want %q", s.Node, "a")
	}
	s, _ = f.Pop()
	if s.Node != "c" {
		t.Errorf("Pop() = %q, want %q", s.Node, "c")
	}
}

func TestPriority_EmptyPop(t *testing.T) {
	f := NewPriority(Unbounded)
	if !f.Empty() {
		t.Fatal("expected empty")
	}
	if _, ok := f.Pop(); ok {
		t.Error("Pop() on empty frontier should return ok=false")
	}
}
