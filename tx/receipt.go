// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	// world state root after the tx was applied
	PostState meridian.Bytes32
	// gas used by this tx
	GasUsed uint64
	// gas used by the block up to and including this tx
	CumulativeGasUsed uint64
}

// Receipts slice of receipts.
type Receipts []*Receipt

// RootHash computes the root hash committing to the ordered receipts.
func (rs Receipts) RootHash() meridian.Bytes32 {
	return triedb.HashNode(derivePairs(len(rs), func(i int) interface{} { return rs[i] }))
}
