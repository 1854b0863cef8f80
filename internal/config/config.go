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

package config

import (
	"fmt"
	"runtime"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/cycles"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
)

// DefaultTargetPath is the file whose pages are targeted for the
// deduplication-based flip. Overridable so tests never touch the real
// system binary.
const DefaultTargetPath = "/usr/lib/sudo/sudoers.so"

// Mode selects which top-level behavior the orchestrator drives.
type Mode int

const (
	// ModeExploit runs the full six-state exploitation driver against the
	// configured target file.
	ModeExploit Mode = iota
	// ModeScanAll only searches every bank of every region for a Template
	// and reports what it finds, without attempting a flip.
	ModeScanAll
	// ModeScanBank restricts the bank scan to a single bank index.
	ModeScanBank
	// ModeRandomPairs runs the statistics-gathering random-pair scanner.
	ModeRandomPairs
)

// DRAMConfig is the reverse-engineered addressing geometry for the target
// DIMM: an ordered list of XOR/parity address functions plus the row
// bitmask. Deriving these values is out of scope; this struct only carries
// them.
type DRAMConfig struct {
	FunctionMasks []uint64
	RowMask       uint64
}

// Geometry converts DRAMConfig into the internal/dram package's Config
// shape.
func (d DRAMConfig) Geometry() dram.Config {
	return dram.Config{FunctionMasks: d.FunctionMasks, RowMask: d.RowMask}
}

// HammerConfig tunes the hammer primitive's activation budget and retry
// behavior, all DIMM- and threat-model-dependent rather than hardcoded.
type HammerConfig struct {
	// Activations is the read/flush iteration count per hammer call.
	Activations uint64
	// Rounds is how many times a scan repeats Activations against the same
	// aggressor pair before moving on.
	Rounds int
	// RandomPairs is how many random address pairs ModeRandomPairs samples.
	RandomPairs int
	// Bank restricts ModeScanBank to this bank index.
	Bank uint16
	// PrintRows records that the --print_rows diagnostic was requested:
	// cmd/ddr3hammer then prints Bank's row addresses and exits without
	// running any scan. Nothing under internal/ reads it.
	PrintRows bool
}

// Config is the complete, immutable run configuration. It is built once in
// cmd/ddr3hammer and threaded by value into orchestrator.Run.
type Config struct {
	Mode       Mode
	DRAM       DRAMConfig
	Hammer     HammerConfig
	TargetPath string
	Verbose    bool
	// FlipSudo carries the -f/--flipsudo flag. No component reads it:
	// ModeExploit primes and hammers the aggressor rows whether or not it
	// is set, and there is no dry-run variant of the exploit path.
	FlipSudo bool
}

// Validate checks that the cycle primitives are supported on this GOARCH
// (ddrerr.UnsupportedArch otherwise), that the supplied DRAM geometry is
// non-empty, that Mode is a recognised value (with Bank in range for
// ModeScanBank), and that the hammer tuning and target path are set,
// returning ddrerr.ConfigurationError on any of those other problems. The
// mutual exclusion of the mode-selecting flags is checked by
// cmd/ddr3hammer's parseArgs, not here.
func (c Config) Validate() error {
	if !cycles.Supported() {
		return ddrerr.Errorf(ddrerr.UnsupportedArch, runtime.GOARCH)
	}

	if len(c.DRAM.FunctionMasks) == 0 {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "no DRAM address functions configured")
	}
	if c.DRAM.RowMask == 0 {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "no row mask configured")
	}

	switch c.Mode {
	case ModeExploit, ModeScanAll, ModeRandomPairs:
		// no further per-mode fields required
	case ModeScanBank:
		if int(c.Hammer.Bank) >= (1 << len(c.DRAM.FunctionMasks)) {
			return ddrerr.Errorf(ddrerr.ConfigurationError, fmt.Sprintf("bank %d out of range for %d function masks", c.Hammer.Bank, len(c.DRAM.FunctionMasks)))
		}
	default:
		return ddrerr.Errorf(ddrerr.ConfigurationError, fmt.Sprintf("unrecognised mode %d", c.Mode))
	}

	if c.Hammer.Activations == 0 {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "activation count must be greater than zero")
	}
	if c.Hammer.Rounds <= 0 {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "rounds must be greater than zero")
	}
	if c.TargetPath == "" {
		return ddrerr.Errorf(ddrerr.ConfigurationError, "target path must not be empty")
	}

	return nil
}
