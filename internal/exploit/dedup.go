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

import (
	"bufio"
	"context"
	"time"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
)

// DedupWait is the strategy a Driver uses to pause at StateAwaitDedup,
// giving the kernel's same-page merging a chance to scan at least once and
// collapse the attacker's copies onto the file-backed page.
type DedupWait interface {
	Wait(ctx context.Context) error
}

// SleepWait pauses for a fixed Duration. This is the default strategy:
// operators size Duration to their kernel's KSM scan interval.
type SleepWait struct {
	Duration time.Duration
}

// Wait blocks for Duration or until ctx is cancelled, whichever comes first.
func (w SleepWait) Wait(ctx context.Context) error {
	select {
	case <-time.After(w.Duration):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StdinWait blocks for a single byte from Reader before continuing. This is
// the known-dubious shortcut: it hands the merge-timing decision to
// whoever is driving the terminal, with no guarantee the merge has actually
// happened. Kept only because it is explicitly nameable, not hidden behind
// a neutral default.
type StdinWait struct {
	Reader *bufio.Reader
}

// Wait ignores ctx and blocks until Reader yields one byte or an error.
func (w StdinWait) Wait(ctx context.Context) error {
	if w.Reader == nil {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "StdinWait requires a Reader")
	}
	if _, err := w.Reader.ReadByte(); err != nil {
		return ddrerr.Errorf(ddrerr.IoFailure, err)
	}
	return nil
}
