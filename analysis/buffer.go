// Package analysis decodes UCI info lines into a fixed-layout analysis
// record. Move and variation strings live in fixed-capacity buffers, so a
// record is a plain value: no allocation while parsing, copy on assignment.
package analysis

const (
	// UCIMaxLength is the longest legal UCI move token, four squares plus
	// an optional promotion letter ("e7e8q").
	UCIMaxLength = 5

	// UCITypicalLength is the length of a move without promotion.
	UCITypicalLength = 4

	// MaxPVMoves is the number of moves a PvBuff can hold.
	MaxPVMoves = 10

	// PVBuffSize leaves room for MaxPVMoves typical moves plus separators.
	PVBuffSize = MaxPVMoves * (UCITypicalLength + 1)
)

// UciBuff is a fixed-capacity buffer for a single UCI move token. It is a
// value type: assignment copies, the zero value is empty and ready to use.
// Setting a longer string silently truncates to capacity.
type UciBuff struct {
	n    int
	buff [UCIMaxLength]byte
}

// Set copies up to UCIMaxLength bytes of s into the buffer.
func (b *UciBuff) Set(s string) {
	b.n = copy(b.buff[:], s)
}

// SetTrim stores the longest prefix of s that fits the buffer and ends on a
// boundary, with the same semantics as PvBuff.SetTrim.
func (b *UciBuff) SetTrim(s string, boundary byte) {
	b.n = copy(b.buff[:], s[:trimIndex(s, UCIMaxLength, boundary)])
}

// Reset empties the buffer.
func (b *UciBuff) Reset() {
	b.n = 0
}

// Len returns the number of stored bytes.
func (b UciBuff) Len() int {
	return b.n
}

func (b UciBuff) String() string {
	return string(b.buff[:b.n])
}

// Value returns the stored string and whether the buffer is non-empty.
func (b UciBuff) Value() (string, bool) {
	if b.n == 0 {
		return "", false
	}
	return b.String(), true
}

// PvBuff is a fixed-capacity buffer for a principal variation, a string of
// whitespace-separated move tokens. Like UciBuff it is a plain value type.
type PvBuff struct {
	n    int
	buff [PVBuffSize]byte
}

// Set copies up to PVBuffSize bytes of s into the buffer.
func (b *PvBuff) Set(s string) {
	b.n = copy(b.buff[:], s)
}

// SetTrim stores the longest prefix of s that fits the buffer without
// splitting a boundary-delimited token: the prefix either is all of s, or
// ends right before an occurrence of boundary. A PV longer than the buffer
// therefore loses whole trailing moves, never half a move. The operation is
// idempotent.
//
// When s is longer than the capacity and contains no boundary at a legal
// stopping point, the prefix is clamped to the raw capacity instead.
func (b *PvBuff) SetTrim(s string, boundary byte) {
	b.n = copy(b.buff[:], s[:trimIndex(s, PVBuffSize, boundary)])
}

// Reset empties the buffer.
func (b *PvBuff) Reset() {
	b.n = 0
}

// Len returns the number of stored bytes.
func (b PvBuff) Len() int {
	return b.n
}

func (b PvBuff) String() string {
	return string(b.buff[:b.n])
}

// Value returns the stored string and whether the buffer is non-empty.
func (b PvBuff) Value() (string, bool) {
	if b.n == 0 {
		return "", false
	}
	return b.String(), true
}

// trimIndex returns the length of the longest prefix of s that fits in max
// bytes and does not split a boundary-delimited token. Whole string fits:
// len(s). Otherwise the largest i <= max with s[i] == boundary, so the cut
// falls between tokens. With no such i the prefix clamps to max.
func trimIndex(s string, max int, boundary byte) int {
	if len(s) <= max {
		return len(s)
	}
	for i := max; i >= 0; i-- {
		if s[i] == boundary {
			return i
		}
	}
	return max
}
