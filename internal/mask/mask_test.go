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

package mask

import (
	"testing"

	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/ddrtest"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
	"github.com/jetsetilly/ddr3hammer/internal/hugebuf"
	"github.com/jetsetilly/ddr3hammer/internal/opcode"
	"github.com/jetsetilly/ddr3hammer/internal/scan"
)

func ddr3Config() dram.Config {
	return dram.Config{
		FunctionMasks: []uint64{0x22000, 0x44000, 0x110000, 0x88000},
		RowMask:       0x1e0000,
	}
}

// scriptedHammerer flips a fixed set of victim-row byte positions on its
// first call (the 1->0 probe) and another fixed set on its second call
// (the 0->1 probe), standing in for the real calibration hammer.
type scriptedHammerer struct {
	buf            *hugebuf.Buffer
	vicRow         uint64
	oneToZeroDrops []uint64 // positions that move away from 0xFF on call 1
	zeroToOneRises []uint64 // positions that move away from 0x00 on call 2
	calls          int
}

func (h *scriptedHammerer) Hammer(a, b *byte, activations uint64) {
	h.calls++
	switch h.calls {
	case 1:
		for _, pos := range h.oneToZeroDrops {
			*h.buf.At(h.vicRow+pos) = 0x00
		}
	case 2:
		for _, pos := range h.zeroToOneRises {
			*h.buf.At(h.vicRow+pos) = 0xFF
		}
	}
}

func newTestBuffer() *hugebuf.Buffer {
	return hugebuf.NewForTest(make([]byte, hugebuf.Size))
}

func TestBuildComposesMaskFromBothProbes(t *testing.T) {
	buf := newTestBuffer()
	cfg := ddr3Config()

	// opcode.Table[0] is at file offset 0x8c1c, ie. 0xc1c within its page.
	vicRow := dram.RowAlign(cfg, 0x60123)
	tmpl := scan.Template{
		Addr: uintptr(vicRow + 0xc1c),
		Op:   opcode.Table[0],
	}

	h := &scriptedHammerer{
		buf:            buf,
		vicRow:         vicRow,
		oneToZeroDrops: []uint64{5, 20},
		zeroToOneRises: []uint64{5, 40}, // position 5 contested: 0->1 wins
	}

	result, err := Build(buf, cfg, tmpl, 0x3C, config.HammerConfig{Activations: 4}, h)
	ddrtest.ExpectSuccess(t, err)

	ddrtest.ExpectEquality(t, result[5], byte(0x00))  // 0->1 won the tie
	ddrtest.ExpectEquality(t, result[20], byte(0xFF)) // only 1->0 touched it
	ddrtest.ExpectEquality(t, result[40], byte(0x00)) // only 0->1 touched it
	ddrtest.ExpectEquality(t, result[0xc1c], byte(^byte(0x3C)))
	ddrtest.ExpectEquality(t, h.calls, 2)
}

func TestBuildRejectsTemplateOutsideItsRow(t *testing.T) {
	buf := newTestBuffer()
	cfg := ddr3Config()

	vicRow := dram.RowAlign(cfg, 0x60123)
	tmpl := scan.Template{
		// bit 21 lies outside every mask, so RowAlign drops it and the
		// address ends up a whole huge page past its own row start
		Addr: uintptr(vicRow + dram.HugePageSize + 1),
		Op:   opcode.Table[0],
	}

	h := &scriptedHammerer{buf: buf, vicRow: vicRow}
	_, err := Build(buf, cfg, tmpl, 0x00, config.HammerConfig{Activations: 4}, h)
	ddrtest.ExpectFailure(t, err)
}
