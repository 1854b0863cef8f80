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

// Package logger implements a small ring-buffered, tag/detail logger. Every
// entry has a tag (identifying the subsystem: "hugebuf", "scan", "exploit",
// and so on) and a detail, which may be a string, an error, a fmt.Stringer,
// or anything else accepted by the %v verb.
//
// Logging is gated per-call by a Permission, so that a caller can silence a
// noisy subsystem (eg. per-iteration hammer progress) without touching every
// call site: pass logger.Allow to always log, or a type implementing
// AllowLogging() bool to make the decision depend on runtime state (eg. a
// verbose flag).
package logger
