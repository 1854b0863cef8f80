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

// Package hugebuf manages the 2 MiB, huge-page-backed buffer that every
// template search and exploitation attempt is staged inside. It reserves
// the region at a fixed virtual address (so the caller can reason about
// physical offsets without re-querying the kernel), asks for transparent
// huge page backing, pins it resident, and carries the entropy-padding
// convention that keeps every page distinct until deduplication is
// deliberately invited (internal/exploit's AwaitDedup state).
package hugebuf
