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

package hammer

import (
	"runtime"
	"time"

	"github.com/jetsetilly/ddr3hammer/internal/cycles"
)

// DefaultActivations is the per-call activation budget a bank scan uses
// against each aggressor pair: 4 * 2^20.
const DefaultActivations = 4 * (1 << 20)

// DefaultRounds is how many times a scan repeats DefaultActivations against
// the same pair before moving on.
const DefaultRounds = 17

// Hammer reads one byte from a, one from b, then flushes both cache lines,
// repeated activations times. The loads are volatile — a and b are plain
// pointers into huge-page-backed memory, never reordered away by the
// compiler since cycles.Flush takes their address across the call boundary.
// The contract isn't a time bound: it's this exact sequence, which on the
// target microarchitecture produces two row activations per iteration in
// the bank shared by a and b.
func Hammer(a, b *byte, activations uint64) {
	runtime.Gosched()
	for ; activations > 0; activations-- {
		_ = *a
		_ = *b
		cycles.Flush(a)
		cycles.Flush(b)
	}
}

// HammerDDR4 wraps the activation loop with a calibration pre-phase: it
// repeatedly loads and flushes aggressors[0] until two successive RDTSCP
// readings differ by more than threshold cycles, approximating the target
// row policy's eviction boundary. It then runs nactivations rounds, each
// reading every aggressor in turn, fencing, then flushing them all. Returns
// the elapsed wall-clock duration.
func HammerDDR4(aggressors []*byte, nactivations uint64, threshold uint16) time.Duration {
	runtime.Gosched()

	var start, end uint64
	for diff(start, end) < uint64(threshold) {
		start = cycles.ReadTSC()
		_ = *aggressors[0]
		cycles.FlushOpt(aggressors[0])
		end = cycles.ReadTSC()
	}

	clockStart := time.Now()
	for i := uint64(0); i < nactivations; i++ {
		for _, agg := range aggressors {
			_ = *agg
		}
		cycles.StoreFence()
		for _, agg := range aggressors {
			cycles.FlushOpt(agg)
		}
	}

	return time.Since(clockStart)
}

// diff is the unsigned-safe absolute difference used by HammerDDR4's
// calibration loop, mirroring the signed abs() cast in the source this was
// ported from.
func diff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
