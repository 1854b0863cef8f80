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

package ddrerr

// Heads for the six error kinds the exploitation pipeline distinguishes.
// These are passed straight to Errorf as the head; Is/Has compare against
// them textually so callers never need a type switch.
const (
	// ConfigurationError: conflicting mode flags, missing required values.
	ConfigurationError = "configuration error: %v"

	// MapFailure: the huge-page mapping, madvise, or mlock call failed.
	MapFailure = "map failure: %v"

	// IoFailure: opening or reading the target library failed.
	IoFailure = "io failure: %v"

	// TemplateNotFound: no exploitable flip discovered in a region. Not an
	// error in the traditional sense - a negative scan result - but surfaced
	// through the same error channel so callers have one thing to check.
	TemplateNotFound = "template not found"

	// HammerSuccess: verified flip at the template offset. Terminal, success.
	HammerSuccess = "hammer succeeded: %v"

	// Exhausted: all regions attempted without a verified flip. Terminal,
	// failure.
	Exhausted = "regions exhausted after %d attempts"

	// Unsupported target architecture for the cycle primitives.
	UnsupportedArch = "unsupported architecture: %v"
)
