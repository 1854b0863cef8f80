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

// Package exploit drives one huge-page region through the six states of a
// single exploitation attempt: find a template, snapshot the target's page,
// place it for deduplication, wait for the kernel to merge it, prime the
// aggressor rows and hammer, then verify. Any failure before Verify is
// reported as ddrerr.TemplateNotFound so internal/orchestrator knows to try
// the next region rather than treat it as fatal.
package exploit
