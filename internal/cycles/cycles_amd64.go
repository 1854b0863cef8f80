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

//go:build amd64

package cycles

import "unsafe"

// Supported reports whether the cycle primitives in this file are usable on
// the running binary's GOARCH.
func Supported() bool { return true }

//go:noescape
func readTSC() uint64

//go:noescape
func flush(addr unsafe.Pointer)

//go:noescape
func flushOpt(addr unsafe.Pointer)

//go:noescape
func loadFence()

//go:noescape
func storeFence()

// ReadTSC returns a serialized read of the invariant cycle counter (RDTSCP).
// The serialization guarantees no later load is reordered above this call
// and no earlier load is reordered below it.
func ReadTSC() uint64 {
	return readTSC()
}

// Flush evicts the cache line containing addr (CLFLUSH), strongly ordered:
// the memory controller observes the eviction before any subsequent access
// by this core.
func Flush(addr *byte) {
	flush(unsafe.Pointer(addr))
}

// FlushOpt evicts the cache line containing addr using the weakly-ordered
// CLFLUSHOPT variant, used on the DDR4 hammer path for throughput; callers
// must insert their own StoreFence where ordering actually matters.
func FlushOpt(addr *byte) {
	flushOpt(unsafe.Pointer(addr))
}

// LoadFence is LFENCE: no later load executes before this point.
func LoadFence() {
	loadFence()
}

// StoreFence is MFENCE: no later load or store executes before every
// earlier store has been made globally visible.
func StoreFence() {
	storeFence()
}
