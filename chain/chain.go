// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain assembles the node's chain handle: world-state repository,
// durable block store, notification bus and the bootstrap logic that ties
// them together at startup.
package chain

import (
	"math/big"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/chaindb"
	"github.com/meridianchain/meridian/listener"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
	"github.com/meridianchain/meridian/tx"
)

// BlockValidator checks a block against its parent before it connects.
type BlockValidator interface {
	ValidateBlock(blk *block.Block, parent *block.Block) error
}

// ReceiptStore indexes receipts of connected blocks.
type ReceiptStore interface {
	SaveReceipts(blockHash meridian.Bytes32, receipts tx.Receipts) error
}

// TxPool holds transactions waiting to be packed into blocks.
type TxPool interface {
	Add(trx *tx.Transaction) error
	Remove(hash meridian.Bytes32)
}

// Chain is the assembled chain handle, head already positioned.
type Chain struct {
	repo       state.Repository
	blockStore *chaindb.BlockStore
	bus        *listener.Composite

	bestBlock       *block.Block
	totalDifficulty *big.Int

	validator    BlockValidator
	receiptStore ReceiptStore
	txPool       TxPool
}

// Repository returns the world-state repository, positioned per bootstrap.
func (c *Chain) Repository() state.Repository {
	return c.repo
}

// BlockStore returns the durable block store.
func (c *Chain) BlockStore() *chaindb.BlockStore {
	return c.blockStore
}

// Listeners returns the block notification bus.
func (c *Chain) Listeners() *listener.Composite {
	return c.bus
}

// BestBlock returns the chain head.
func (c *Chain) BestBlock() *block.Block {
	return c.bestBlock
}

// TotalDifficulty returns the accumulated difficulty up to the head.
func (c *Chain) TotalDifficulty() *big.Int {
	return new(big.Int).Set(c.totalDifficulty)
}

// Validator returns the wired block validator, nil if none.
func (c *Chain) Validator() BlockValidator {
	return c.validator
}

// ReceiptStore returns the wired receipt store, nil if none.
func (c *Chain) ReceiptStore() ReceiptStore {
	return c.receiptStore
}

// TxPool returns the wired transaction pool, nil if none.
func (c *Chain) TxPool() TxPool {
	return c.txPool
}
