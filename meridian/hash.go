// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meridian

import (
	"hash"

	"github.com/ethereum/go-ethereum/crypto"
)

// NewKeccak256 returns keccak256 hash.
func NewKeccak256() hash.Hash {
	return crypto.NewKeccakState()
}

// Keccak256 computes keccak256 checksum for given data.
func Keccak256(data ...[]byte) Bytes32 {
	return Bytes32(crypto.Keccak256Hash(data...))
}
