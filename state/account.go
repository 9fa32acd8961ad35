// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

// hibernatedFlag marks an account soft-reset by Hibernate. The account keeps
// its identity (address, nonce, balance) but sheds code and storage.
const hibernatedFlag uint64 = 1

// Account is the consensus representation of an account.
// RLP encoded accounts are the leaves of the world state node.
type Account struct {
	Nonce       uint64
	Balance     *big.Int
	StorageRoot meridian.Bytes32
	CodeHash    meridian.Bytes32
	StateFlags  uint64
}

func newAccount() *Account {
	return &Account{
		Balance:     new(big.Int),
		StorageRoot: triedb.EmptyRoot,
		CodeHash:    meridian.EmptyCodeHash,
	}
}

// Hibernated returns whether the account has been hibernated.
func (a *Account) Hibernated() bool {
	return a.StateFlags&hibernatedFlag != 0
}

func (a *Account) hibernate() {
	a.StateFlags |= hibernatedFlag
	a.CodeHash = meridian.EmptyCodeHash
	a.StorageRoot = triedb.EmptyRoot
}

// HasCode returns whether the account has associated code.
func (a *Account) HasCode() bool {
	return a.CodeHash != meridian.EmptyCodeHash && !a.CodeHash.IsZero()
}

// Copy makes a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := *a
	cpy.Balance = new(big.Int).Set(a.Balance)
	return &cpy
}

// encodeAccount encodes the account into its canonical leaf form.
// Encoding only fails on a negative balance, which is a caller-contract
// violation the repository does not tolerate silently.
func encodeAccount(a *Account) []byte {
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		panic(&Error{err})
	}
	return data
}

func decodeAccount(data []byte) (*Account, error) {
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// worldPairs lays out accounts as trie node entries.
func worldPairs(accounts map[meridian.Address]*Account) []triedb.Pair {
	pairs := make([]triedb.Pair, 0, len(accounts))
	for addr, acc := range accounts {
		key := make([]byte, meridian.AddressLength)
		copy(key, addr[:])
		pairs = append(pairs, triedb.Pair{Key: key, Value: encodeAccount(acc)})
	}
	return pairs
}

// computeRoot derives the world state root committing to accounts.
// Pure computation, no storage access.
func computeRoot(accounts map[meridian.Address]*Account) meridian.Bytes32 {
	return triedb.HashNode(worldPairs(accounts))
}
