package buffer

// Sample is the element type a Buffer can hold.
type Sample interface {
	~float64 | ~complex128
}

// Buffer wraps a sample slice with reuse-friendly semantics.
// DSP functions accept raw slices; use Samples() to bridge.
type Buffer[T Sample] struct {
	samples []T
}

// New returns a zero-filled Buffer of the given length.
func New[T Sample](length int) *Buffer[T] {
	if length < 0 {
		length = 0
	}

	return &Buffer[T]{samples: make([]T, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice[T Sample](s []T) *Buffer[T] {
	return &Buffer[T]{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer[T]) Samples() []T {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer[T]) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer[T]) Cap() int {
	return cap(b.samples)
}

// Grow ensures capacity is at least n, preserving existing data.
// If the current capacity is already >= n this is a no-op.
func (b *Buffer[T]) Grow(n int) {
	if n <= cap(b.samples) {
		return
	}

	grown := make([]T, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Resize sets the length to n, reusing existing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Buffer[T]) Resize(n int) {
	if n < 0 {
		n = 0
	}

	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]T, n)
		copy(s, b.samples)
		b.samples = s
	}

	// Newly exposed elements may hold stale data from earlier use.
	if n > oldLen {
		clear(b.samples[oldLen:n])
	}
}

// Zero sets all samples to 0.
func (b *Buffer[T]) Zero() {
	clear(b.samples)
}

// Append adds samples to the end of the buffer.
func (b *Buffer[T]) Append(samples ...T) {
	b.samples = append(b.samples, samples...)
}

// Consume drops the first n samples, clamped to Len, and moves the rest to
// the front so the backing array is reused.
func (b *Buffer[T]) Consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.samples) {
		b.samples = b.samples[:0]
		return
	}

	rest := copy(b.samples, b.samples[n:])
	b.samples = b.samples[:rest]
}

// Copy returns a deep copy of the buffer.
func (b *Buffer[T]) Copy() *Buffer[T] {
	s := make([]T, len(b.samples))
	copy(s, b.samples)

	return &Buffer[T]{samples: s}
}
