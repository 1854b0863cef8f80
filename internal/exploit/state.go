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

// State names the point a Driver attempt has reached, reported back in a
// Result regardless of whether the attempt succeeded.
type State int

const (
	StateTemplateSearch State = iota
	StatePageSnapshot
	StatePagePlacement
	StateAwaitDedup
	StatePrimeAndHammer
	StateVerify
)

func (s State) String() string {
	switch s {
	case StateTemplateSearch:
		return "template search"
	case StatePageSnapshot:
		return "page snapshot"
	case StatePagePlacement:
		return "page placement"
	case StateAwaitDedup:
		return "await dedup"
	case StatePrimeAndHammer:
		return "prime and hammer"
	case StateVerify:
		return "verify"
	default:
		return "unknown state"
	}
}
