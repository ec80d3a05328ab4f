package midievent

// smallCap is the inline capacity of the small representation, chosen to
// comfortably hold the common MTrk events (a channel event with
// delta-time is at most 4+3 bytes; most meta/sysex events used in
// practice also fit) without falling over to a heap allocation. 24 bytes
// keeps the struct's inline array a round number of words on a 64-bit
// target.
const smallCap = 24

// eventBytes is a small-buffer-optimized, owning byte container: an
// Event's serialized bytes live inline in small when they fit, or in a
// heap-backed slice (big) once they grow past smallCap. Growth is
// one-way: once a buffer has spilled to big, shrinking it back down does
// not move it back into small. The zero value is a valid, empty,
// small-representation buffer — no allocation required.
type eventBytes struct {
	small [smallCap]byte
	n     int
	big   []byte
}

// newEventBytes returns an empty small-representation buffer.
func newEventBytes() eventBytes {
	return eventBytes{}
}

// eventBytesFrom copies src into a new buffer, choosing the small
// representation when src fits.
func eventBytesFrom(src []byte) eventBytes {
	var e eventBytes
	e.assign(src)
	return e
}

// Len returns the number of bytes currently stored.
func (e *eventBytes) Len() int {
	if e.isSmallRep() {
		return e.n
	}
	return len(e.big)
}

// isSmallRep reports whether this buffer is in the small representation.
// The representation is distinguished by whether big has been allocated;
// a zero-valued eventBytes has big == nil and is a valid, empty small
// buffer.
func (e *eventBytes) isSmallRep() bool {
	return e.big == nil
}

// Cap returns the current capacity: smallCap while in the small
// representation, or the backing slice's capacity once spilled to big.
func (e *eventBytes) Cap() int {
	if e.isSmallRep() {
		return smallCap
	}
	return cap(e.big)
}

// Bytes returns a view of the stored bytes. The slice is valid until the
// next mutating call (Resize, Reserve, PushBack, Append, assign); it
// aliases heap memory in the big representation and the inline array in
// the small representation, so callers must not retain it across a
// mutation.
func (e *eventBytes) Bytes() []byte {
	if e.isSmallRep() {
		return e.small[:e.n]
	}
	return e.big
}

// Get returns the byte at index i.
func (e *eventBytes) Get(i int) byte {
	return e.Bytes()[i]
}

// Set overwrites the byte at index i.
func (e *eventBytes) Set(i int, v byte) {
	if e.isSmallRep() {
		e.small[i] = v
		return
	}
	e.big[i] = v
}

// migrateToBig copies the current small contents into a heap slice with
// the given capacity and switches representation. It is a no-op if
// already big and cap(e.big) >= want.
func (e *eventBytes) migrateToBig(want int) {
	if !e.isSmallRep() {
		if cap(e.big) < want {
			grown := make([]byte, len(e.big), want)
			copy(grown, e.big)
			e.big = grown
		}
		return
	}
	big := make([]byte, e.n, want)
	copy(big, e.small[:e.n])
	e.big = big
}

// Reserve ensures the container can hold at least n bytes without a
// further reallocation, migrating out of the small representation if
// necessary. Reserve never shrinks a big buffer back to small.
func (e *eventBytes) Reserve(n int) {
	if n <= e.Cap() {
		return
	}
	if n <= smallCap {
		return
	}
	e.migrateToBig(n)
}

// Resize changes the logical length to n, zero-filling any newly exposed
// bytes, and migrating to the big representation if n exceeds smallCap.
func (e *eventBytes) Resize(n int) {
	if n <= smallCap && e.isSmallRep() {
		if n > e.n {
			for i := e.n; i < n; i++ {
				e.small[i] = 0
			}
		}
		e.n = n
		return
	}
	e.migrateToBig(n)
	if n > len(e.big) {
		e.big = append(e.big, make([]byte, n-len(e.big))...)
	} else {
		e.big = e.big[:n]
	}
}

// PushBack appends a single byte, growing the container as needed.
func (e *eventBytes) PushBack(b byte) {
	if e.isSmallRep() && e.n < smallCap {
		e.small[e.n] = b
		e.n++
		return
	}
	if e.isSmallRep() {
		e.migrateToBig(smallCap * 2)
	}
	e.big = append(e.big, b)
}

// Append appends all of bs, growing the container as needed.
func (e *eventBytes) Append(bs []byte) {
	for _, b := range bs {
		e.PushBack(b)
	}
}

// assign replaces the contents wholesale, choosing the small
// representation when src fits and the big representation otherwise.
func (e *eventBytes) assign(src []byte) {
	if len(src) <= smallCap {
		e.big = nil
		e.n = len(src)
		copy(e.small[:e.n], src)
		return
	}
	e.big = append([]byte(nil), src...)
	e.n = 0
}

// Equal reports whether e and o hold the same bytes, irrespective of
// representation.
func (e *eventBytes) Equal(o *eventBytes) bool {
	a, b := e.Bytes(), o.Bytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
