// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/chaindb"
	"github.com/meridianchain/meridian/genesis"
	"github.com/meridianchain/meridian/listener"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
	"github.com/meridianchain/meridian/triedb"
)

var logger = log.New("pkg", "chain")

// Loader bootstraps the chain: it either seeds a fresh chain from the
// genesis spec or resumes from the recorded head, and in both cases leaves
// the repository positioned at a root consistent with the block store.
type Loader struct {
	config     Config
	repo       state.Repository
	blockStore *chaindb.BlockStore
	gen        *genesis.Genesis
	bus        *listener.Composite

	validator    BlockValidator
	receiptStore ReceiptStore
	txPool       TxPool
	dumpWriter   io.Writer
}

// NewLoader creates a loader over the given collaborators.
func NewLoader(config Config, repo state.Repository, blockStore *chaindb.BlockStore, gen *genesis.Genesis, bus *listener.Composite) *Loader {
	return &Loader{
		config:     config,
		repo:       repo,
		blockStore: blockStore,
		gen:        gen,
		bus:        bus,
	}
}

// WithValidator wires a block validator into the assembled chain.
func (l *Loader) WithValidator(v BlockValidator) *Loader {
	l.validator = v
	return l
}

// WithReceiptStore wires a receipt store into the assembled chain.
func (l *Loader) WithReceiptStore(rs ReceiptStore) *Loader {
	l.receiptStore = rs
	return l
}

// WithTxPool wires a transaction pool into the assembled chain.
func (l *Loader) WithTxPool(p TxPool) *Loader {
	l.txPool = p
	return l
}

// WithStateDump makes the cold-start path write a full state dump to w
// for audit.
func (l *Loader) WithStateDump(w io.Writer) *Loader {
	l.dumpWriter = w
	return l
}

// LoadBlockchain runs bootstrap and returns the assembled chain handle with
// head block and total difficulty already set. Any fault aborts startup; no
// partial chain head is ever installed.
func (l *Loader) LoadBlockchain() (*Chain, error) {
	if err := l.config.validate(); err != nil {
		return nil, err
	}

	ticker := &flushTicker{
		repo:       l.repo,
		blockStore: l.blockStore,
		enabled:    l.config.FlushEnabled,
		cadence:    l.config.FlushCadence,
	}
	l.bus.Add(ticker)

	var (
		bestBlock       *block.Block
		totalDifficulty *big.Int
	)

	switch best, err := l.blockStore.BestBlock(); {
	case err == nil:
		totalDifficulty, err = l.blockStore.TotalDifficulty(best.Hash())
		if err != nil {
			return nil, errors.Wrap(err, "load total difficulty")
		}
		bestBlock = best
		logger.Info("resuming existing chain",
			"best", bestBlock.Header(),
			"totalDifficulty", totalDifficulty,
		)

	case l.blockStore.IsNotFound(err):
		bestBlock, totalDifficulty, err = l.bootstrapGenesis(ticker)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Wrap(err, "load best block")
	}

	if err := l.reconcileRoot(bestBlock); err != nil {
		return nil, err
	}

	return &Chain{
		repo:            l.repo,
		blockStore:      l.blockStore,
		bus:             l.bus,
		bestBlock:       bestBlock,
		totalDifficulty: totalDifficulty,
		validator:       l.validator,
		receiptStore:    l.receiptStore,
		txPool:          l.txPool,
	}, nil
}

// bootstrapGenesis seeds the world state with the premine, persists the
// genesis block canonically and announces it on the bus, which drives the
// very first flush.
func (l *Loader) bootstrapGenesis(ticker *flushTicker) (*block.Block, *big.Int, error) {
	l.gen.DefaultNonce(l.config.InitialNonce)

	blk, err := l.gen.Build(l.repo)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build genesis")
	}
	// the chain starts here, so the genesis difficulty is also the total
	totalDifficulty := blk.Header().Difficulty()
	l.blockStore.SaveBlock(blk, totalDifficulty, nil, true)

	l.bus.OnBlock(blk, nil)
	if err := ticker.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "genesis flush")
	}

	if l.dumpWriter != nil {
		if err := l.repo.DumpState(l.dumpWriter, 0, blk.Hash(), 0, 0, nil); err != nil {
			return nil, nil, errors.Wrap(err, "genesis state dump")
		}
	}

	logger.Info("seeded new chain",
		"network", l.gen.Name(),
		"genesis", blk.Header(),
		"stateRoot", blk.Header().StateRoot(),
	)
	return blk, totalDifficulty, nil
}

// reconcileRoot positions the repository at the root the block store's head
// records. The trie store may legitimately hold roots ahead of the head
// after a crash mid-flush; winding back to the recorded root is always safe
// because flushed roots are never discarded.
func (l *Loader) reconcileRoot(best *block.Block) error {
	if l.config.RootHashOverride != "" {
		root, err := meridian.ParseBytes32(l.config.RootHashOverride)
		if err != nil {
			return errors.Wrapf(err, "malformed root hash override %q", l.config.RootHashOverride)
		}
		logger.Warn("overriding world state root", "root", root)
		return errors.Wrap(l.repo.SyncToRoot(root), "sync to override root")
	}

	stateRoot := best.Header().StateRoot()
	if stateRoot == triedb.EmptyRoot {
		// nothing meaningful to sync to yet
		return nil
	}
	if stateRoot == l.repo.Root() {
		// already positioned; genesis bootstrap lands here
		return nil
	}
	return errors.Wrap(l.repo.SyncToRoot(stateRoot), "sync to best block root")
}
