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

package orchestrator

import (
	"context"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/dram"
	"github.com/jetsetilly/ddr3hammer/internal/exploit"
	"github.com/jetsetilly/ddr3hammer/internal/hugebuf"
	"github.com/jetsetilly/ddr3hammer/internal/scan"
	"github.com/jetsetilly/ddr3hammer/logger"
)

// NumRegions is how many successive 2 MiB virtual regions a run attempts
// before giving up.
const NumRegions = 20

// Outcome aggregates what was found across every region a run attempted.
type Outcome struct {
	RegionsAttempted int
	Template         *scan.Template
	ExploitResult    exploit.Result
	RandomPairFlips  uint64
}

// Run maps regions 1..NumRegions in turn, each at k*hugebuf.Size, and
// delegates to whichever behavior cfg.Mode selects. It returns as soon as
// that behavior reports a terminal outcome (a verified flip, or any
// Template found in a scan-only mode); ModeRandomPairs never terminates
// early and always runs every region, accumulating flip counts. If every
// region is exhausted without a terminal outcome, Run returns
// ddrerr.Exhausted.
func Run(ctx context.Context, cfg config.Config, dedup exploit.DedupWait, log *logger.Logger) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}

	geo := cfg.DRAM.Geometry()
	var outcome Outcome

	for k := 1; k <= NumRegions; k++ {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		base := uintptr(k) * hugebuf.Size
		buf, err := hugebuf.Map(base)
		if err != nil {
			logf(log, "region %d: map failed: %v", k, err)
			outcome.RegionsAttempted = k
			continue
		}

		tmpl, result, flips, terminal, rerr := attemptRegion(ctx, cfg, geo, buf, dedup)
		outcome.RegionsAttempted = k
		outcome.RandomPairFlips += flips
		if tmpl != nil {
			outcome.Template = tmpl
		}
		if cfg.Mode == config.ModeExploit {
			outcome.ExploitResult = result
		}
		logf(log, "region %d: %v", k, rerr)

		if terminal {
			return outcome, rerr
		}
	}

	return outcome, ddrerr.Errorf(ddrerr.Exhausted, NumRegions)
}

// attemptRegion runs exactly one mode's behavior against buf and always
// unmaps it before returning, regardless of outcome.
func attemptRegion(ctx context.Context, cfg config.Config, geo dram.Config, buf *hugebuf.Buffer, dedup exploit.DedupWait) (tmpl *scan.Template, result exploit.Result, flips uint64, terminal bool, err error) {
	defer buf.Unmap()

	buf.Fill(0xFF)
	if err := buf.AddEntropy(); err != nil {
		return nil, exploit.Result{}, 0, false, err
	}

	switch cfg.Mode {
	case config.ModeExploit:
		d := &exploit.Driver{
			Buf:        buf,
			Geometry:   geo,
			HammerCfg:  cfg.Hammer,
			TargetPath: cfg.TargetPath,
			Dedup:      dedup,
			Hammerer:   scan.DefaultHammerer,
		}
		res, rerr := d.Run(ctx)
		return res.Template, res, 0, ddrerr.Is(rerr, ddrerr.HammerSuccess), rerr

	case config.ModeScanAll:
		t, serr := scan.ScanAllBanks(buf, geo, cfg.Hammer, scan.DefaultHammerer)
		return t, exploit.Result{}, 0, serr == nil, serr

	case config.ModeScanBank:
		t, serr := scan.ScanBank(buf, geo, cfg.Hammer.Bank, cfg.Hammer, scan.DefaultHammerer)
		return t, exploit.Result{}, 0, serr == nil, serr

	case config.ModeRandomPairs:
		f, serr := scan.ScanRandomPairs(buf, geo, cfg.Hammer, scan.DefaultHammerer)
		return nil, exploit.Result{}, f, false, serr

	default:
		return nil, exploit.Result{}, 0, false, ddrerr.Errorf(ddrerr.ConfigurationError, "unrecognised mode")
	}
}

func logf(log *logger.Logger, format string, args ...interface{}) {
	if log == nil {
		return
	}
	log.Logf(logger.Allow, "ddr3", format, args...)
}
