// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"math/big"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/tx"
)

// Builder to make it easy to build a block object.
type Builder struct {
	body headerBody
	txs  tx.Transactions
}

// ParentHash set parent hash.
func (b *Builder) ParentHash(hash meridian.Bytes32) *Builder {
	b.body.ParentHash = hash
	return b
}

// Number set block number.
func (b *Builder) Number(num uint32) *Builder {
	b.body.Number = num
	return b
}

// Coinbase set recipient of reward.
func (b *Builder) Coinbase(addr meridian.Address) *Builder {
	b.body.Coinbase = addr
	return b
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.body.Timestamp = ts
	return b
}

// GasLimit set gas limit.
func (b *Builder) GasLimit(limit uint64) *Builder {
	b.body.GasLimit = limit
	return b
}

// GasUsed set gas used.
func (b *Builder) GasUsed(used uint64) *Builder {
	b.body.GasUsed = used
	return b
}

// Difficulty set block difficulty.
func (b *Builder) Difficulty(diff *big.Int) *Builder {
	b.body.Difficulty = new(big.Int).Set(diff)
	return b
}

// StateRoot set state root.
func (b *Builder) StateRoot(hash meridian.Bytes32) *Builder {
	b.body.StateRoot = hash
	return b
}

// ReceiptsRoot set receipts root.
func (b *Builder) ReceiptsRoot(hash meridian.Bytes32) *Builder {
	b.body.ReceiptsRoot = hash
	return b
}

// ExtraData set extra data.
func (b *Builder) ExtraData(data []byte) *Builder {
	b.body.ExtraData = append([]byte(nil), data...)
	return b
}

// Transaction add a transaction.
func (b *Builder) Transaction(trx *tx.Transaction) *Builder {
	b.txs = append(b.txs, trx)
	return b
}

// Build build a block object.
func (b *Builder) Build() *Block {
	body := b.body
	body.TxsRoot = b.txs.RootHash()
	if body.Difficulty == nil {
		body.Difficulty = new(big.Int)
	}

	return &Block{
		&Header{body: body},
		b.txs.Copy(),
	}
}
