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

package hugebuf

import (
	"crypto/rand"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
)

// Size is the span of a buffer: one 2 MiB huge page.
const Size = dram.HugePageSize

// EntropyPaddingSize is the number of fresh random bytes written to the
// start of every 4 KiB sub-page by AddEntropy.
const EntropyPaddingSize = 8

// Buffer is a 2 MiB region reserved at a fixed virtual address and backed
// by a transparent huge page.
type Buffer struct {
	base uintptr
	mem  []byte
}

// Map reserves Size bytes at base, which must itself be 2 MiB aligned so
// the mapping can be backed by a single transparent huge page. It advises
// the kernel to collapse the region into a THP and pins it resident so it
// is never swapped out mid-attempt.
func Map(base uintptr) (*Buffer, error) {
	addr, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		base,
		Size,
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_FIXED),
		^uintptr(0), // no backing fd
		0,
	)
	if errno != 0 {
		return nil, ddrerr.Errorf(ddrerr.MapFailure, errno)
	}

	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), Size)

	if err := unix.Madvise(mem, unix.MADV_HUGEPAGE); err != nil {
		unix.Syscall(unix.SYS_MUNMAP, addr, Size, 0)
		return nil, ddrerr.Errorf(ddrerr.MapFailure, err)
	}

	if err := unix.Mlock(mem); err != nil {
		unix.Syscall(unix.SYS_MUNMAP, addr, Size, 0)
		return nil, ddrerr.Errorf(ddrerr.MapFailure, err)
	}

	return &Buffer{base: addr, mem: mem}, nil
}

// newBuffer builds a Buffer directly from an already-allocated byte slice,
// bypassing the real mmap/madvise/mlock calls. Used by tests, which only
// exercise Fill/AddEntropy's logic and have no need of real huge-page
// backing or the privileges mlock requires.
func newBuffer(mem []byte) *Buffer {
	return &Buffer{mem: mem}
}

// NewForTest builds a Buffer from a plain byte slice, for use by other
// packages' tests that need a hugebuf.Buffer to drive their own code
// against without a real fixed-address mapping. mem's length should
// normally be Size.
func NewForTest(mem []byte) *Buffer {
	return newBuffer(mem)
}

// Base returns the buffer's virtual base address.
func (b *Buffer) Base() uintptr {
	return b.base
}

// Bytes exposes the whole region for direct indexing by callers that
// already hold a physical offset from the dram package.
func (b *Buffer) Bytes() []byte {
	return b.mem
}

// At returns a pointer to the byte at offset, for use with the cycles
// package's volatile load/flush primitives.
func (b *Buffer) At(offset uint64) *byte {
	return &b.mem[offset]
}

// Fill writes value across the entire region.
func (b *Buffer) Fill(value byte) {
	for i := range b.mem {
		b.mem[i] = value
	}
}

// AddEntropy writes fresh cryptographically random bytes to the first
// EntropyPaddingSize bytes of every 4 KiB sub-page. Before the target page
// is deliberately overwritten to match the file's content (internal/exploit's
// PagePlacement state), this keeps every page in the buffer distinct from
// every other page and from the file page, so the kernel's same-page
// merging has nothing to collapse.
func (b *Buffer) AddEntropy() error {
	var padding [EntropyPaddingSize]byte
	for page := 0; page < len(b.mem); page += dram.PageSize {
		if _, err := rand.Read(padding[:]); err != nil {
			return ddrerr.Errorf(ddrerr.IoFailure, err)
		}
		copy(b.mem[page:page+EntropyPaddingSize], padding[:])
	}
	return nil
}

// Unmap releases the reservation. Every call site that successfully Maps a
// Buffer must defer Unmap, including early-exit error paths.
func (b *Buffer) Unmap() error {
	if b.base == 0 {
		return nil
	}
	if err := unix.Munmap(b.mem); err != nil {
		return ddrerr.Errorf(ddrerr.MapFailure, err)
	}
	return nil
}
