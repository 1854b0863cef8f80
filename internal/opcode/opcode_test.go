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

package opcode_test

import (
	"testing"

	"github.com/jetsetilly/ddr3hammer/internal/ddrtest"
	"github.com/jetsetilly/ddr3hammer/internal/opcode"
)

func TestTableSize(t *testing.T) {
	ddrtest.ExpectEquality(t, len(opcode.Table), opcode.NumEntries)
}

func TestMatchZeroToOne(t *testing.T) {
	// 0x8dcf, bit 0, ZeroToOne: 0x00 ^ (1<<0) == 0x01
	e, ok := opcode.Match(0x8dcf, 4096, 0x01, opcode.ZeroToOne)
	ddrtest.ExpectSuccess(t, ok)
	ddrtest.ExpectEquality(t, e.FileOffset, uint32(0x8dcf))

	// same offset, one page further along the buffer
	e2, ok2 := opcode.Match(0x8dcf+4096, 4096, 0x01, opcode.ZeroToOne)
	ddrtest.ExpectSuccess(t, ok2)
	ddrtest.ExpectEquality(t, e2.FileOffset, uint32(0x8dcf))
}

func TestMatchOneToZero(t *testing.T) {
	// 0x8dd1, bit 0, OneToZero: 0xFF ^ (1<<0) == 0xFE
	e, ok := opcode.Match(0x8dd1, 4096, 0xFE, opcode.OneToZero)
	ddrtest.ExpectSuccess(t, ok)
	ddrtest.ExpectEquality(t, e.BitIndex, uint8(0))
}

func TestMatchWrongDirection(t *testing.T) {
	_, ok := opcode.Match(0x8dd1, 4096, 0xFE, opcode.ZeroToOne)
	ddrtest.ExpectFailure(t, ok)
}

func TestMatchNoCandidate(t *testing.T) {
	_, ok := opcode.Match(0x1234, 4096, 0x01, opcode.ZeroToOne)
	ddrtest.ExpectFailure(t, ok)
}

func TestDirectionString(t *testing.T) {
	ddrtest.ExpectEquality(t, opcode.ZeroToOne.String(), "0->1")
	ddrtest.ExpectEquality(t, opcode.OneToZero.String(), "1->0")
}
