// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the genesis block and seeds the world state with
// the premine allocations.
package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/state"
)

// Account is one premine allocation. Allocations apply in declaration order.
type Account struct {
	Address meridian.Address
	Balance *big.Int
	Nonce   uint64
	Code    []byte
	Storage map[meridian.Bytes32]meridian.Bytes32

	// Overrides pin the committed roots regardless of code/storage content.
	// Used by networks whose genesis state was computed externally.
	StorageRoot *meridian.Bytes32
	CodeHash    *meridian.Bytes32
}

// Genesis describes block zero.
type Genesis struct {
	launchTime uint64
	gasLimit   uint64
	coinbase   meridian.Address
	extraData  []byte
	accounts   []Account
	name       string

	defaultNonce uint64
}

// DefaultNonce sets the nonce applied to premine accounts that don't
// declare one. Zero (keep the accounts as declared) by default.
func (g *Genesis) DefaultNonce(nonce uint64) {
	g.defaultNonce = nonce
}

// Name returns the network name of this genesis.
func (g *Genesis) Name() string {
	return g.name
}

// Build seeds repo with the premine and returns the genesis block stamped
// with the resulting state root. The repository is left unflushed; the
// caller decides when the state hits disk.
func (g *Genesis) Build(repo state.Repository) (*block.Block, error) {
	for _, alloc := range g.accounts {
		acc := repo.CreateAccount(alloc.Address)
		if alloc.Balance != nil && alloc.Balance.Sign() != 0 {
			repo.AddBalance(alloc.Address, alloc.Balance)
		}
		acc.Nonce = alloc.Nonce
		if acc.Nonce == 0 {
			acc.Nonce = g.defaultNonce
		}

		if len(alloc.Code) > 0 {
			if err := repo.SaveCode(alloc.Address, alloc.Code); err != nil {
				return nil, errors.Wrap(err, "premine code")
			}
		}
		for key, value := range alloc.Storage {
			if err := repo.AddStorageRow(alloc.Address, key, value); err != nil {
				return nil, errors.Wrap(err, "premine storage")
			}
		}

		if alloc.StorageRoot != nil {
			acc.StorageRoot = *alloc.StorageRoot
		}
		if alloc.CodeHash != nil {
			acc.CodeHash = *alloc.CodeHash
		}
		repo.UpdateAccountState(alloc.Address, acc)
	}

	return new(block.Builder).
		ParentHash(meridian.Bytes32{}).
		Number(0).
		Coinbase(g.coinbase).
		Timestamp(g.launchTime).
		GasLimit(g.gasLimit).
		Difficulty(meridian.InitialDifficulty).
		StateRoot(repo.Root()).
		ExtraData(g.extraData).
		Build(), nil
}
