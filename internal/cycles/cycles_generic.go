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

//go:build !amd64

package cycles

// Supported reports whether the cycle primitives are usable on the running
// binary's GOARCH. Always false here: rdtscp/clflush have no equivalent on
// this build. internal/config.Validate rejects a run before any of the
// functions below would otherwise be reached.
func Supported() bool { return false }

// ReadTSC, Flush, FlushOpt, LoadFence and StoreFence exist only so the rest
// of the tree type-checks on any GOARCH; they are unreachable in practice
// because Supported gates every caller.
func ReadTSC() uint64     { return 0 }
func Flush(addr *byte)    {}
func FlushOpt(addr *byte) {}
func LoadFence()          {}
func StoreFence()         {}
