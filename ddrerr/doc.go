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

// Package ddrerr is a helper package for the plain Go language error type. We
// think of these errors as curated errors. External to this package, curated
// errors are referenced as plain errors (ie. they implement the error
// interface).
//
// Internally, errors are thought of as being composed of parts, as described
// by The Go Programming Language (Donovan, Kernighan): "When the error is
// ultimately handled by the program's main function, it should provide a clear
// causal chain from the root of the problem to the overall failure".
//
// The Error() function implementation for curated errors ensures that this
// chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. The practical advantage of this is that a caller
// doesn't need to think hard about whether to wrap an error again on its way
// up:
//
//	func attemptRegion(k int) error {
//		buf, err := hugebuf.Map(uintptr(k) * hugebuf.Size)
//		if err != nil {
//			return ddrerr.Errorf("region %d: %v", k, err)
//		}
//		return nil
//	}
//
// A handful of sentinel heads are defined for the six error kinds the
// exploitation pipeline distinguishes between (ConfigurationError,
// MapFailure, IoFailure, TemplateNotFound, HammerSuccess, Exhausted). Use
// Is/Has to test a returned error against one of these heads.
package ddrerr
