// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "the network to join (dev) or the path to a genesis file",
		Value: "dev",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for block-chain databases",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 128,
		Usage: "megabytes of ram allocated to database caching",
	}
	disableFlushFlag = cli.BoolFlag{
		Name:  "disable-flush",
		Usage: "keep connected blocks in memory only (test chains)",
	}
	flushCadenceFlag = cli.UintFlag{
		Name:  "flush-cadence",
		Value: 1,
		Usage: "number of blocks between state flushes",
	}
	rootHashOverrideFlag = cli.StringFlag{
		Name:  "root-hash-override",
		Usage: "force the world state to this root at startup (hex)",
	}
	initialNonceFlag = cli.Uint64Flag{
		Name:  "initial-nonce",
		Usage: "nonce given to premine accounts that don't declare one",
	}
	dumpStateFlag = cli.StringFlag{
		Name:  "dump-state",
		Usage: "write a genesis state dump to this file for audit",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "expose prometheus metrics on this address, empty to disable",
	}
)
