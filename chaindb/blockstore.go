// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chaindb implements the durable block store. Saved blocks are
// staged in memory and hit disk only on Flush, so the caller controls the
// persistence point relative to the world-state flush.
package chaindb

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/kv"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/tx"
)

var errNotFound = errors.New("not found")

// blockInfo is the per-block metadata kept alongside the block itself.
type blockInfo struct {
	TotalDifficulty *big.Int
	Receipts        tx.Receipts
}

type pendingEntry struct {
	blk  *block.Block
	info *blockInfo
}

// BlockStore stores blocks, their receipts and chain metadata.
//
// It's thread-safe.
type BlockStore struct {
	store kv.Store

	mu          sync.Mutex
	pending     map[meridian.Bytes32]*pendingEntry
	pendingBest meridian.Bytes32
	hasBest     bool
}

// NewBlockStore creates a block store over the given kv store.
func NewBlockStore(store kv.Store) *BlockStore {
	return &BlockStore{
		store:   store,
		pending: make(map[meridian.Bytes32]*pendingEntry),
	}
}

// SaveBlock stages a block with its receipts and accumulated difficulty.
// With best set, the block also becomes the staged best-block pointer.
// Nothing reaches disk until Flush.
func (s *BlockStore) SaveBlock(blk *block.Block, totalDifficulty *big.Int, receipts tx.Receipts, best bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash := blk.Hash()
	s.pending[hash] = &pendingEntry{
		blk: blk,
		info: &blockInfo{
			TotalDifficulty: new(big.Int).Set(totalDifficulty),
			Receipts:        receipts,
		},
	}
	if best {
		s.pendingBest = hash
		s.hasBest = true
	}
}

// Flush commits all staged blocks and the best-block pointer in one batch.
func (s *BlockStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.store.NewBatch()
	blockPutter := kv.Bucket(blockBucket).NewPutter(batch)
	infoPutter := kv.Bucket(infoBucket).NewPutter(batch)
	propPutter := kv.Bucket(propBucket).NewPutter(batch)

	for hash, entry := range s.pending {
		if err := saveRLP(blockPutter, hash[:], entry.blk); err != nil {
			return err
		}
		if err := saveRLP(infoPutter, hash[:], entry.info); err != nil {
			return err
		}
	}
	if s.hasBest {
		if err := propPutter.Put(bestBlockKey, s.pendingBest[:]); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "flush block store")
	}

	s.pending = make(map[meridian.Bytes32]*pendingEntry)
	s.hasBest = false
	return nil
}

// PendingCount returns the number of staged, unflushed blocks.
func (s *BlockStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// GetBlock returns the block with the given hash, staged or durable.
func (s *BlockStore) GetBlock(hash meridian.Bytes32) (*block.Block, error) {
	s.mu.Lock()
	if entry, ok := s.pending[hash]; ok {
		s.mu.Unlock()
		return entry.blk, nil
	}
	s.mu.Unlock()

	var blk block.Block
	if err := loadRLP(kv.Bucket(blockBucket).NewStore(s.store), hash[:], &blk); err != nil {
		return nil, s.convertError(err, "get block")
	}
	return &blk, nil
}

// HasBlock tells whether a block with the given hash is known.
func (s *BlockStore) HasBlock(hash meridian.Bytes32) (bool, error) {
	s.mu.Lock()
	if _, ok := s.pending[hash]; ok {
		s.mu.Unlock()
		return true, nil
	}
	s.mu.Unlock()
	return kv.Bucket(blockBucket).NewStore(s.store).Has(hash[:])
}

// BestBlock returns the block the best pointer refers to, or an error
// checkable with IsNotFound when the store is empty.
func (s *BlockStore) BestBlock() (*block.Block, error) {
	hash, err := s.BestBlockHash()
	if err != nil {
		return nil, err
	}
	return s.GetBlock(hash)
}

// BestBlockHash returns the hash of the best block.
func (s *BlockStore) BestBlockHash() (meridian.Bytes32, error) {
	s.mu.Lock()
	if s.hasBest {
		best := s.pendingBest
		s.mu.Unlock()
		return best, nil
	}
	s.mu.Unlock()

	data, err := kv.Bucket(propBucket).NewStore(s.store).Get(bestBlockKey)
	if err != nil {
		return meridian.Bytes32{}, s.convertError(err, "get best block")
	}
	return meridian.BytesToBytes32(data), nil
}

// TotalDifficulty returns the accumulated difficulty up to the given block.
func (s *BlockStore) TotalDifficulty(hash meridian.Bytes32) (*big.Int, error) {
	info, err := s.getInfo(hash)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(info.TotalDifficulty), nil
}

// GetReceipts returns the receipts of the given block.
func (s *BlockStore) GetReceipts(hash meridian.Bytes32) (tx.Receipts, error) {
	info, err := s.getInfo(hash)
	if err != nil {
		return nil, err
	}
	return info.Receipts, nil
}

func (s *BlockStore) getInfo(hash meridian.Bytes32) (*blockInfo, error) {
	s.mu.Lock()
	if entry, ok := s.pending[hash]; ok {
		s.mu.Unlock()
		return entry.info, nil
	}
	s.mu.Unlock()

	var info blockInfo
	if err := loadRLP(kv.Bucket(infoBucket).NewStore(s.store), hash[:], &info); err != nil {
		return nil, s.convertError(err, "get block info")
	}
	return &info, nil
}

// IsNotFound tells whether the error indicates a missing entry.
func (s *BlockStore) IsNotFound(err error) bool {
	cause := errors.Cause(err)
	return cause == errNotFound || s.store.IsNotFound(cause)
}

func (s *BlockStore) convertError(err error, msg string) error {
	if s.store.IsNotFound(err) {
		return errors.WithMessage(errNotFound, msg)
	}
	return errors.Wrap(err, msg)
}
