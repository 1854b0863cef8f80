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

// Package orchestrator drives the top-level retry loop: it maps one
// 2 MiB region at a time at successive virtual bases, hands the region to
// whichever mode the configuration selects (full exploitation, a bank scan,
// or the random-pair statistics scanner), and keeps going until either a
// flip is verified or every region has been tried.
package orchestrator
