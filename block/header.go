// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
)

// Header contains almost all information about a block, except block body.
// It's immutable.
type Header struct {
	body headerBody

	cache struct {
		hash atomic.Value
	}
}

// headerBody body of header
type headerBody struct {
	ParentHash meridian.Bytes32
	Number     uint32
	Coinbase   meridian.Address
	Timestamp  uint64

	GasLimit uint64
	GasUsed  uint64

	Difficulty *big.Int

	TxsRoot      meridian.Bytes32
	StateRoot    meridian.Bytes32
	ReceiptsRoot meridian.Bytes32

	ExtraData []byte
}

// ParentHash returns hash of parent block.
func (h *Header) ParentHash() meridian.Bytes32 {
	return h.body.ParentHash
}

// Number returns sequential number of this block.
func (h *Header) Number() uint32 {
	return h.body.Number
}

// Coinbase returns reward recipient.
func (h *Header) Coinbase() meridian.Address {
	return h.body.Coinbase
}

// Timestamp returns timestamp of this block.
func (h *Header) Timestamp() uint64 {
	return h.body.Timestamp
}

// GasLimit returns gas limit of this block.
func (h *Header) GasLimit() uint64 {
	return h.body.GasLimit
}

// GasUsed returns gas used by txs.
func (h *Header) GasUsed() uint64 {
	return h.body.GasUsed
}

// Difficulty returns the difficulty of this block.
func (h *Header) Difficulty() *big.Int {
	return new(big.Int).Set(h.body.Difficulty)
}

// TxsRoot returns the root committing to txs contained in this block.
func (h *Header) TxsRoot() meridian.Bytes32 {
	return h.body.TxsRoot
}

// StateRoot returns the world state root just after this block being applied.
func (h *Header) StateRoot() meridian.Bytes32 {
	return h.body.StateRoot
}

// ReceiptsRoot returns the root committing to tx receipts.
func (h *Header) ReceiptsRoot() meridian.Bytes32 {
	return h.body.ReceiptsRoot
}

// ExtraData returns the free-form extra data.
func (h *Header) ExtraData() []byte {
	return append([]byte(nil), h.body.ExtraData...)
}

// Hash computes hash of the header.
func (h *Header) Hash() meridian.Bytes32 {
	if cached := h.cache.hash.Load(); cached != nil {
		return cached.(meridian.Bytes32)
	}

	hw := meridian.NewKeccak256()
	rlp.Encode(hw, h)

	var hash meridian.Bytes32
	hw.Sum(hash[:0])
	h.cache.hash.Store(hash)
	return hash
}

// EncodeRLP implements rlp.Encoder
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Block(#%v, %v)", h.body.Number, h.Hash().AbbrevString())
}
