// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"time"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/chaindb"
	"github.com/meridianchain/meridian/listener"
	"github.com/meridianchain/meridian/state"
	"github.com/meridianchain/meridian/tx"
)

// flushTicker persists state on a rolling block cadence. It is plain
// per-chain state registered on the notification bus, so multiple chains in
// one process never share a counter.
//
// The repository always flushes before the block store. A crash between the
// two leaves the trie store ahead of the best-block pointer, which resume
// reconciliation winds back; the reverse order could leave the pointer
// referencing a root that was never durably committed.
type flushTicker struct {
	repo       state.Repository
	blockStore *chaindb.BlockStore
	enabled    bool
	cadence    uint32
	counter    uint32

	lastErr error
}

var _ listener.BlockListener = (*flushTicker)(nil)

// OnBlock flushes when the counter sits at zero, then advances it. With
// cadence N the flush lands on blocks 0, N, 2N, ...
func (t *flushTicker) OnBlock(blk *block.Block, _ tx.Receipts) {
	if t.enabled && t.counter == 0 {
		t.lastErr = t.flush(blk)
	}
	t.counter = (t.counter + 1) % t.cadence
}

func (t *flushTicker) flush(blk *block.Block) error {
	start := time.Now()

	if err := t.repo.Flush(); err != nil {
		logger.Error("state flush failed", "block", blk.Header().Number(), "err", err)
		return err
	}
	if err := t.blockStore.Flush(); err != nil {
		logger.Error("block store flush failed", "block", blk.Header().Number(), "err", err)
		return err
	}

	elapsed := time.Since(start)
	logger.Debug("flushed chain state", "block", blk.Header().Number(), "elapsed", elapsed)
	metricFlushCount().Add(1)
	metricFlushDuration().Set(elapsed.Milliseconds())
	return nil
}

// Err returns the outcome of the most recent flush attempt. The bus is
// synchronous and void; bootstrap polls this to abort on I/O faults.
func (t *flushTicker) Err() error {
	return t.lastErr
}
