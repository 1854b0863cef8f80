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

// Package config holds the single, immutable, process-wide configuration
// value that cmd/ddr3hammer builds once from flags and passes by value into
// internal/orchestrator. Nothing in internal/ reads a package-level global:
// every component that needs DRAM geometry, hammer tuning, or a run mode
// receives it explicitly.
package config
