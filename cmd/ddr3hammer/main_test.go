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

package main

import (
	"testing"

	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/ddrtest"
	"github.com/jetsetilly/ddr3hammer/internal/hammer"
	"github.com/jetsetilly/ddr3hammer/logger"
)

func TestParseArgsDefaultsToExploitMode(t *testing.T) {
	cfg, printRows, err := parseArgs(nil, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, printRows, false)
	ddrtest.ExpectEquality(t, cfg.Mode, config.ModeExploit)
	ddrtest.ExpectEquality(t, cfg.Hammer.Rounds, hammer.DefaultRounds)
	ddrtest.ExpectEquality(t, cfg.Hammer.Activations, uint64(hammer.DefaultActivations))
	ddrtest.ExpectEquality(t, cfg.TargetPath, config.DefaultTargetPath)
}

func TestParseArgsAllSelectsScanAllMode(t *testing.T) {
	cfg, _, err := parseArgs([]string{"--all"}, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, cfg.Mode, config.ModeScanAll)
}

func TestParseArgsBankSelectsScanBankMode(t *testing.T) {
	cfg, _, err := parseArgs([]string{"--bank", "3"}, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, cfg.Mode, config.ModeScanBank)
	ddrtest.ExpectEquality(t, cfg.Hammer.Bank, uint16(3))
}

func TestParseArgsRandomSelectsRandomPairsMode(t *testing.T) {
	cfg, _, err := parseArgs([]string{"--random", "--r_pairs", "50"}, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, cfg.Mode, config.ModeRandomPairs)
	ddrtest.ExpectEquality(t, cfg.Hammer.RandomPairs, 50)
}

func TestParseArgsRejectsConflictingModeFlags(t *testing.T) {
	_, _, err := parseArgs([]string{"--all", "--bank", "2"}, logger.NewLogger(8))
	ddrtest.ExpectFailure(t, err)
}

func TestParseArgsPrintRowsShortCircuitsMode(t *testing.T) {
	cfg, printRows, err := parseArgs([]string{"--print_rows", "5"}, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, printRows, true)
	ddrtest.ExpectEquality(t, cfg.Hammer.Bank, uint16(5))
}

func TestParseArgsMasksOverride(t *testing.T) {
	cfg, _, err := parseArgs([]string{"--masks", "0x1000,0x2000", "--rowmask", "0x4000"}, logger.NewLogger(8))
	ddrtest.ExpectSuccess(t, err)
	ddrtest.ExpectEquality(t, cfg.DRAM.FunctionMasks, []uint64{0x1000, 0x2000})
	ddrtest.ExpectEquality(t, cfg.DRAM.RowMask, uint64(0x4000))
}

func TestParseArgsRejectsMalformedMasks(t *testing.T) {
	_, _, err := parseArgs([]string{"--masks", "not-hex"}, logger.NewLogger(8))
	ddrtest.ExpectFailure(t, err)
}
