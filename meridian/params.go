// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meridian

import "math/big"

// Constants of block chain.
const (
	InitialGasLimit uint64 = 10 * 1000 * 1000 // gas limit value in genesis block.

	// InitialAccountNonce nonce assigned to premined accounts unless the
	// genesis spec says otherwise.
	InitialAccountNonce uint64 = 0
)

var (
	// EmptyCodeHash hash of empty code.
	EmptyCodeHash = Keccak256(nil)

	// InitialDifficulty difficulty of the genesis block, which also acts as
	// the chain's initial total difficulty.
	InitialDifficulty = big.NewInt(1)
)
