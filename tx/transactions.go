// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

// Transactions a slice of transactions.
type Transactions []*Transaction

// Copy returns a shallow copy.
func (txs Transactions) Copy() Transactions {
	return append(Transactions(nil), txs...)
}

// RootHash computes the root hash committing to the ordered transactions.
func (txs Transactions) RootHash() meridian.Bytes32 {
	return triedb.HashNode(derivePairs(len(txs), func(i int) interface{} { return txs[i] }))
}

// derivePairs lays out an ordered list as trie node entries keyed by index.
func derivePairs(n int, at func(int) interface{}) []triedb.Pair {
	pairs := make([]triedb.Pair, n)
	for i := range pairs {
		key, err := rlp.EncodeToBytes(uint(i))
		if err != nil {
			panic(err)
		}
		value, err := rlp.EncodeToBytes(at(i))
		if err != nil {
			panic(err)
		}
		pairs[i] = triedb.Pair{Key: key, Value: value}
	}
	return pairs
}
