// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
)

// Transaction is an immutable value-transfer or contract invocation.
type Transaction struct {
	body body

	cache struct {
		hash *meridian.Bytes32
	}
}

// body describes details of a tx.
type body struct {
	Nonce     uint64
	GasPrice  *big.Int
	GasLimit  uint64
	To        *meridian.Address `rlp:"nil"`
	Value     *big.Int
	Data      []byte
	Signature []byte
}

// Hash returns hash of tx.
func (t *Transaction) Hash() meridian.Bytes32 {
	if cached := t.cache.hash; cached != nil {
		return *cached
	}

	hw := meridian.NewKeccak256()
	rlp.Encode(hw, t)

	var h meridian.Bytes32
	hw.Sum(h[:0])
	t.cache.hash = &h
	return h
}

// Nonce returns the sender nonce the tx was built with.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// GasPrice returns gas price.
func (t *Transaction) GasPrice() *big.Int {
	return new(big.Int).Set(t.body.GasPrice)
}

// GasLimit returns gas provision for this tx.
func (t *Transaction) GasLimit() uint64 {
	return t.body.GasLimit
}

// To returns the recipient, nil for contract creation.
func (t *Transaction) To() *meridian.Address {
	if t.body.To == nil {
		return nil
	}
	cpy := *t.body.To
	return &cpy
}

// Value returns the amount transferred.
func (t *Transaction) Value() *big.Int {
	return new(big.Int).Set(t.body.Value)
}

// Data returns the input data.
func (t *Transaction) Data() []byte {
	return append([]byte(nil), t.body.Data...)
}

// Signature returns signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	newTx.body.Signature = append([]byte(nil), sig...)
	return &newTx
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{
		body: body,
	}
	return nil
}
