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

// Package dram translates between virtual addresses inside a huge-page
// buffer and the abstract (channel/rank/bank, row) coordinates of the
// underlying DIMM, using a small configured set of XOR/parity address
// functions plus one contiguous row bitmask. This is the side-channel
// output treated as configuration input by this package: deriving the
// function masks themselves is out of scope (spec.md §1).
package dram

import "math/bits"

// HugePageSize is the size, in bytes, of the transparent huge page the
// exploit buffer is backed by.
const HugePageSize = 1 << 21

// PageSize is the ordinary MMU page size assumed by the target platform.
const PageSize = 4096

// RowSize is the span, in bytes, treated as a single DRAM row's worth of
// controlled addresses: two consecutive 4 KiB pages.
const RowSize = 2 * PageSize

// Address is an abstract DRAM coordinate: one parity bit per configured
// address function, plus a row index.
type Address struct {
	ChannelToBank []uint8
	Row           uint64
}

// Config is the ordered list of address-function masks plus the row
// bitmask. All masks must live inside the low 21 bits of a physical
// address, and the row bitmask is expected to be one contiguous run of set
// bits (the row field). Config is immutable for the duration of a run.
type Config struct {
	FunctionMasks []uint64
	RowMask       uint64
}

// rowShift is the bit position of the row field's least significant set
// bit.
func (c Config) rowShift() uint {
	return uint(bits.TrailingZeros64(c.RowMask))
}

// CoverageMask is the union of every function mask and the row mask: the
// set of physical-address bits this Config actually has an opinion about.
// Bits outside CoverageMask (typically the cacheline/page-offset bits
// below the lowest function bit) are untouched by PhysicalToDRAM and
// DRAMToPhysical; callers address them separately as byte offsets within a
// row, which is why RowAlign exists.
func (c Config) CoverageMask() uint64 {
	m := c.RowMask
	for _, fn := range c.FunctionMasks {
		m |= fn
	}
	return m
}

func parity64(v uint64) uint8 {
	return uint8(bits.OnesCount64(v) & 1)
}

// PhysicalToDRAM decomposes a physical offset (already masked to the huge
// page, ie. in [0, HugePageSize)) into DRAM coordinates: one parity bit per
// function mask, and a row index extracted from the row bitmask.
func PhysicalToDRAM(cfg Config, phys uint64) Address {
	chToBank := make([]uint8, len(cfg.FunctionMasks))
	for i, fn := range cfg.FunctionMasks {
		chToBank[i] = parity64(phys & fn)
	}
	return Address{
		ChannelToBank: chToBank,
		Row:           (phys & cfg.RowMask) >> cfg.rowShift(),
	}
}

// DRAMToPhysical reconstructs a physical offset from DRAM coordinates.
//
// It starts from the row field alone (every other bit zero) and then, for
// each function mask whose current parity doesn't already match the
// requested coordinate bit, flips exactly one bit of that mask: the single
// bit of the mask that falls outside the row bitmask's span. The bit
// inside the row span is never touched - it is already pinned by the row
// field - which is the origin of the asymmetry spec.md §4.3 calls out:
// one extreme of each function mask is "written", the other is implicitly
// "carried" by the row.
//
// Masks that place more than one free bit outside the row span are
// resolved by using their lowest such bit; real DRAM addressing functions
// as reverse-engineered for this target only ever contribute one free bit
// per mask, and the round-trip property test in the dram_test.go file
// verifies this holds for the configured masks.
func DRAMToPhysical(cfg Config, addr Address) uint64 {
	phys := addr.Row << cfg.rowShift()

	for i, fn := range cfg.FunctionMasks {
		want := addr.ChannelToBank[i] & 1
		if parity64(phys&fn) == want {
			continue
		}

		free := fn &^ cfg.RowMask
		if free == 0 {
			// the mask is entirely inside the row span; there is no bit
			// left to carry the requested value. A programmer error in
			// the supplied Config, not a recoverable condition here.
			continue
		}
		bit := free & (-free) // isolate the lowest set bit of free
		phys ^= bit
	}

	return phys
}

// RowAlign returns the physical offset, within the huge page, of the start
// of the row containing phys. It round-trips phys through Address to
// discard the column/cacheline bits that Config has no opinion about.
func RowAlign(cfg Config, phys uint64) uint64 {
	return DRAMToPhysical(cfg, PhysicalToDRAM(cfg, phys))
}

// Direction of row adjacency.
const (
	PrevRow = -1
	NextRow = +1
)

// AdjacentRow returns the physical offset of the row immediately before
// (delta == PrevRow) or after (delta == NextRow) the row containing phys,
// within the same bank.
func AdjacentRow(cfg Config, phys uint64, delta int) uint64 {
	addr := PhysicalToDRAM(cfg, phys)
	addr.Row = uint64(int64(addr.Row) + int64(delta))
	return DRAMToPhysical(cfg, addr)
}

// BankNumber packs an Address's channel-to-bank bits into a single integer,
// one bit per configured function, for use as a compact bank identifier
// (spec.md §4.5's "bank index").
func BankNumber(addr Address) uint16 {
	var n uint16
	for i, b := range addr.ChannelToBank {
		n |= uint16(b&1) << i
	}
	return n
}

// AddressForBank builds the Address of row within the given bank number
// (the inverse of BankNumber over the channel-to-bank bits).
func AddressForBank(cfg Config, bank uint16, row uint64) Address {
	chToBank := make([]uint8, len(cfg.FunctionMasks))
	for i := range chToBank {
		chToBank[i] = uint8((bank >> i) & 1)
	}
	return Address{ChannelToBank: chToBank, Row: row}
}
