package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New[complex128](8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	if b := New[float64](-1); b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	s := []complex128{1, 2, 3}
	b := FromSlice(s)
	b.Samples()[0] = 99i
	if s[0] != 99i {
		t.Fatal("FromSlice should share underlying memory")
	}
}

func TestGrowPreservesData(t *testing.T) {
	b := New[complex128](4)
	b.Samples()[0] = 42
	b.Grow(16)

	if b.Cap() < 16 {
		t.Fatalf("Cap() = %d, want >= 16", b.Cap())
	}
	if b.Len() != 4 || b.Samples()[0] != 42 {
		t.Fatal("Grow must keep length and data")
	}

	c := b.Cap()
	b.Grow(c)
	if b.Cap() != c {
		t.Fatal("Grow should be a no-op when capacity is sufficient")
	}
}

func TestResizeZeroesStaleData(t *testing.T) {
	b := FromSlice([]float64{1, 2, 3, 4})
	b.Resize(1)
	b.Resize(4)

	want := []float64{1, 0, 0, 0}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("Samples()[%d] = %v, want %v", i, v, want[i])
		}
	}

	b.Resize(-3)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after negative resize", b.Len())
	}
}

func TestAppendConsume(t *testing.T) {
	b := New[complex128](0)
	b.Append(1, 2, 3)
	b.Append(4, 5)

	b.Consume(2)
	want := []complex128{3, 4, 5}
	if b.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(want))
	}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("Samples()[%d] = %v, want %v", i, v, want[i])
		}
	}

	c := b.Cap()
	b.Consume(0)
	b.Consume(10)
	if b.Len() != 0 || b.Cap() != c {
		t.Fatalf("Consume past end: len %d cap %d, want 0 and %d", b.Len(), b.Cap(), c)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := FromSlice([]complex128{1, 2})
	c := b.Copy()
	c.Samples()[0] = 7
	if b.Samples()[0] != 1 {
		t.Fatal("Copy shares memory")
	}
}
