// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/meridianchain/meridian/chain"
	"github.com/meridianchain/meridian/chaindb"
	"github.com/meridianchain/meridian/genesis"
	"github.com/meridianchain/meridian/listener"
	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/state"
	"github.com/meridianchain/meridian/triedb"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Meridian",
		Usage:     "Node of the Meridian network",
		Copyright: "2026 The Meridian developers",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			cacheFlag,
			disableFlushFlag,
			flushCadenceFlag,
			rootHashOverrideFlag,
			initialNonceFlag,
			dumpStateFlag,
			verbosityFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx)
	defer func() { log.Info("exited") }()

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		if err := startMetricsServer(addr); err != nil {
			return err
		}
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return errors.New("data directory not set")
	}
	instanceDir := filepath.Join(dataDir, gene.Name())
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return errors.Wrap(err, "create instance dir")
	}

	db, err := lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return errors.Wrap(err, "open main database")
	}
	defer func() { log.Info("closing main database..."); db.Close() }()

	repo, err := state.New(triedb.New(db), triedb.EmptyRoot)
	if err != nil {
		return errors.Wrap(err, "open state repository")
	}

	loader := chain.NewLoader(
		chain.Config{
			FlushEnabled:     !ctx.Bool(disableFlushFlag.Name),
			FlushCadence:     uint32(ctx.Uint(flushCadenceFlag.Name)),
			RootHashOverride: ctx.String(rootHashOverrideFlag.Name),
			InitialNonce:     ctx.Uint64(initialNonceFlag.Name),
		},
		repo,
		chaindb.NewBlockStore(db),
		gene,
		new(listener.Composite),
	)

	if dumpPath := ctx.String(dumpStateFlag.Name); dumpPath != "" {
		dumpFile, err := os.Create(dumpPath)
		if err != nil {
			return errors.Wrap(err, "create state dump file")
		}
		defer dumpFile.Close()
		loader.WithStateDump(dumpFile)
	}

	c, err := loader.LoadBlockchain()
	if err != nil {
		return errors.Wrap(err, "load blockchain")
	}

	printStartupMessage(gene, c, instanceDir)
	return nil
}

func printStartupMessage(gene *genesis.Genesis, c *chain.Chain, instanceDir string) {
	head := c.BestBlock().Header()
	fmt.Printf(`Starting %v
    Network     [ %v ]
    Best block  [ #%v %v ]
    State root  [ %v ]
    Total diff  [ %v ]
    Instance    [ %v ]
`,
		fullVersion(),
		gene.Name(),
		head.Number(), head.Hash(),
		head.StateRoot(),
		c.TotalDifficulty(),
		instanceDir,
	)
}
