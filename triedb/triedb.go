// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package triedb implements the content-addressed node store backing the
// world state. A node commits to a set of key/value pairs; its storage key
// equals the keccak256 hash of its canonical encoding. The store is
// append-mostly: nodes are never deleted here, so every root that was ever
// written stays readable until an external collector reclaims it. That is
// what makes point-in-time sync cheap: repositioning to a historical root is
// a single lookup, not a replay.
package triedb

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/kv"
	"github.com/meridianchain/meridian/meridian"
)

// Pair is one key/value entry of a trie node.
type Pair struct {
	Key   []byte
	Value []byte
}

// EmptyRoot is the root of a node with no entries, the canonical sentinel
// for "no state".
var EmptyRoot = HashNode(nil)

// encodeNode produces the canonical encoding of pairs: entries sorted by key,
// RLP encoded. The input is not modified.
func encodeNode(pairs []Pair) []byte {
	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	data, err := rlp.EncodeToBytes(sorted)
	if err != nil {
		// Pair contains only byte slices, encoding cannot fail.
		panic(err)
	}
	return data
}

// HashNode computes the content address of the node committing to pairs.
// It is a pure function: two pair sets with equal contents hash equally,
// regardless of input order.
func HashNode(pairs []Pair) meridian.Bytes32 {
	return meridian.Keccak256(encodeNode(pairs))
}

// HashBlob computes the content address of an opaque blob (contract code).
func HashBlob(blob []byte) meridian.Bytes32 {
	return meridian.Keccak256(blob)
}

// Store is a content-addressed node store over a kv store.
type Store struct {
	store kv.Store
}

// New creates a store over the given kv store.
func New(store kv.Store) *Store {
	return &Store{store}
}

// StageNode writes the node committing to pairs into p and returns its root.
// Use with a kv.Batch to persist a whole state atomically.
func StageNode(p kv.Putter, pairs []Pair) (meridian.Bytes32, error) {
	data := encodeNode(pairs)
	root := meridian.Keccak256(data)
	if err := p.Put(root[:], data); err != nil {
		return meridian.Bytes32{}, err
	}
	return root, nil
}

// StageBlob writes an opaque blob into p keyed by its hash.
func StageBlob(p kv.Putter, blob []byte) (meridian.Bytes32, error) {
	hash := HashBlob(blob)
	if err := p.Put(hash[:], blob); err != nil {
		return meridian.Bytes32{}, err
	}
	return hash, nil
}

// NewBatch creates a batch for staging nodes and blobs.
func (s *Store) NewBatch() kv.Batch {
	return s.store.NewBatch()
}

// GetNode loads the node at the given root.
// The empty root resolves without touching the store.
func (s *Store) GetNode(root meridian.Bytes32) ([]Pair, error) {
	if root == EmptyRoot || root.IsZero() {
		return nil, nil
	}
	data, err := s.store.Get(root[:])
	if err != nil {
		return nil, errors.Wrapf(err, "get node %v", root.AbbrevString())
	}
	var pairs []Pair
	if err := rlp.DecodeBytes(data, &pairs); err != nil {
		return nil, errors.Wrapf(err, "decode node %v", root.AbbrevString())
	}
	return pairs, nil
}

// GetBlob loads the blob stored at the given hash.
func (s *Store) GetBlob(hash meridian.Bytes32) ([]byte, error) {
	if hash == meridian.EmptyCodeHash || hash.IsZero() {
		return nil, nil
	}
	blob, err := s.store.Get(hash[:])
	if err != nil {
		return nil, errors.Wrapf(err, "get blob %v", hash.AbbrevString())
	}
	return blob, nil
}

// HasRoot tells whether a node exists at the given root.
func (s *Store) HasRoot(root meridian.Bytes32) (bool, error) {
	if root == EmptyRoot || root.IsZero() {
		return true, nil
	}
	return s.store.Has(root[:])
}

// IsNotFound to check if the error indicates a missing node.
func (s *Store) IsNotFound(err error) bool {
	return s.store.IsNotFound(errors.Cause(err))
}
