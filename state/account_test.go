// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

func TestAccountEncoding(t *testing.T) {
	acc := newAccount()
	acc.Nonce = 7
	acc.Balance = big.NewInt(1000)

	decoded, err := decodeAccount(encodeAccount(acc))
	assert.Nil(t, err)
	assert.Equal(t, acc, decoded)
}

func TestAccountEncodingNegativeBalance(t *testing.T) {
	acc := newAccount()
	acc.Balance = big.NewInt(-1)
	assert.Panics(t, func() { encodeAccount(acc) })
}

func TestAccountHibernate(t *testing.T) {
	acc := newAccount()
	acc.Nonce = 3
	acc.Balance = big.NewInt(50)
	acc.CodeHash = meridian.Keccak256([]byte("code"))
	acc.StorageRoot = meridian.Keccak256([]byte("storage"))

	assert.False(t, acc.Hibernated())
	acc.hibernate()
	assert.True(t, acc.Hibernated())
	assert.Equal(t, uint64(3), acc.Nonce)
	assert.Equal(t, big.NewInt(50), acc.Balance)
	assert.Equal(t, meridian.EmptyCodeHash, acc.CodeHash)
	assert.Equal(t, triedb.EmptyRoot, acc.StorageRoot)
	assert.False(t, acc.HasCode())
}

func TestAccountCopy(t *testing.T) {
	acc := newAccount()
	acc.Balance = big.NewInt(10)

	cpy := acc.Copy()
	cpy.Balance.SetInt64(99)
	cpy.Nonce = 5
	assert.Equal(t, big.NewInt(10), acc.Balance)
	assert.Equal(t, uint64(0), acc.Nonce)
}

func TestComputeRootOrderIndependent(t *testing.T) {
	a := meridian.BytesToAddress([]byte{1})
	b := meridian.BytesToAddress([]byte{2})

	accA := newAccount()
	accA.Balance = big.NewInt(1)
	accB := newAccount()
	accB.Balance = big.NewInt(2)

	root1 := computeRoot(map[meridian.Address]*Account{a: accA, b: accB})
	root2 := computeRoot(map[meridian.Address]*Account{b: accB, a: accA})
	assert.Equal(t, root1, root2)

	assert.Equal(t, triedb.EmptyRoot, computeRoot(nil))
	assert.NotEqual(t, triedb.EmptyRoot, root1)
}

func TestContractDetailsStorage(t *testing.T) {
	addr := meridian.BytesToAddress([]byte("contract"))
	det := newContractDetails(addr)
	key := meridian.BytesToBytes32([]byte{1})

	assert.Equal(t, triedb.EmptyRoot, det.StorageRoot())
	assert.Equal(t, meridian.EmptyCodeHash, det.CodeHash())

	det.SetStorage(key, []byte{0xff})
	assert.Equal(t, []byte{0xff}, det.GetStorage(key))
	assert.NotEqual(t, triedb.EmptyRoot, det.StorageRoot())

	// empty value deletes
	det.SetStorage(key, nil)
	assert.Nil(t, det.GetStorage(key))
	assert.Equal(t, triedb.EmptyRoot, det.StorageRoot())
}

func TestTrimWord(t *testing.T) {
	assert.Equal(t, []byte{}, trimWord(meridian.Bytes32{}))
	assert.Equal(t, []byte{5}, trimWord(meridian.BytesToBytes32([]byte{5})))

	full := meridian.Bytes32{}
	full[0] = 1
	assert.Equal(t, 32, len(trimWord(full)))
}
