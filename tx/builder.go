// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/meridianchain/meridian/meridian"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// GasPrice set gas price.
func (b *Builder) GasPrice(price *big.Int) *Builder {
	b.body.GasPrice = new(big.Int).Set(price)
	return b
}

// GasLimit set gas provision for tx.
func (b *Builder) GasLimit(limit uint64) *Builder {
	b.body.GasLimit = limit
	return b
}

// To set the recipient, nil for contract creation.
func (b *Builder) To(addr *meridian.Address) *Builder {
	if addr == nil {
		b.body.To = nil
	} else {
		cpy := *addr
		b.body.To = &cpy
	}
	return b
}

// Value set the amount transferred.
func (b *Builder) Value(value *big.Int) *Builder {
	b.body.Value = new(big.Int).Set(value)
	return b
}

// Data set the input data.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	body := b.body
	if body.GasPrice == nil {
		body.GasPrice = new(big.Int)
	}
	if body.Value == nil {
		body.Value = new(big.Int)
	}
	return &Transaction{body: body}
}
