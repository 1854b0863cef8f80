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
	"testing"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/ddrtest"
)

func validConfig() Config {
	return Config{
		Mode: ModeExploit,
		DRAM: DRAMConfig{
			FunctionMasks: []uint64{0x22000, 0x44000, 0x110000, 0x88000},
			RowMask:       0x1e0000,
		},
		Hammer: HammerConfig{
			Activations: 1 << 20,
			Rounds:      17,
		},
		TargetPath: DefaultTargetPath,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	ddrtest.ExpectSuccess(t, validConfig().Validate())
}

func TestValidateRejectsEmptyFunctionMasks(t *testing.T) {
	cfg := validConfig()
	cfg.DRAM.FunctionMasks = nil
	err := cfg.Validate()
	ddrtest.ExpectFailure(t, err)
	if !ddrerr.Is(err, ddrerr.ConfigurationError) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestValidateRejectsZeroRowMask(t *testing.T) {
	cfg := validConfig()
	cfg.DRAM.RowMask = 0
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestValidateRejectsZeroActivations(t *testing.T) {
	cfg := validConfig()
	cfg.Hammer.Activations = 0
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestValidateRejectsZeroRounds(t *testing.T) {
	cfg := validConfig()
	cfg.Hammer.Rounds = 0
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestValidateRejectsEmptyTargetPath(t *testing.T) {
	cfg := validConfig()
	cfg.TargetPath = ""
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestValidateRejectsBankOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = ModeScanBank
	cfg.Hammer.Bank = 16 // only 4 function masks -> banks [0,16)... exactly at boundary
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestValidateAcceptsBankAtTopOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = ModeScanBank
	cfg.Hammer.Bank = 15
	ddrtest.ExpectSuccess(t, cfg.Validate())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = Mode(99)
	ddrtest.ExpectFailure(t, cfg.Validate())
}

func TestGeometryConversion(t *testing.T) {
	cfg := validConfig()
	geo := cfg.DRAM.Geometry()
	ddrtest.ExpectEquality(t, geo.RowMask, cfg.DRAM.RowMask)
	ddrtest.ExpectEquality(t, len(geo.FunctionMasks), len(cfg.DRAM.FunctionMasks))
}
