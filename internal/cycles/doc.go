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

// Package cycles exposes the handful of architecture-specific machine
// instructions every timing-sensitive routine in this module is built on:
// a serialized read of the invariant cycle counter, single-cache-line
// eviction (two variants), and the store/load fences needed to keep the
// hammer primitive's read and flush phases from being reordered by the
// core.
//
// These are deliberately not abstracted beyond a thin assembly stub -
// portability to non-amd64 hosts is a non-goal. Supported reports whether
// the current binary was built for an architecture these primitives exist
// for; every caller above this package is expected to check it once, at
// startup, rather than per call.
package cycles
