// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/lvldb"
	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

func M(a ...interface{}) []interface{} {
	return a
}

func newTestRepo(t *testing.T) Repository {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	repo, err := New(triedb.New(db), triedb.EmptyRoot)
	assert.Nil(t, err)
	return repo
}

func TestCreateAccountIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("a1"))

	assert.False(t, repo.Exists(addr))
	acc := repo.CreateAccount(addr)
	assert.True(t, repo.Exists(addr))
	assert.Equal(t, uint64(0), acc.Nonce)
	assert.Equal(t, new(big.Int), acc.Balance)

	acc.Nonce = 9
	again := repo.CreateAccount(addr)
	assert.Equal(t, acc, again)
	assert.Equal(t, uint64(9), again.Nonce)
}

func TestAutoCreateOnMutation(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("ghost"))

	assert.Equal(t, big.NewInt(42), repo.AddBalance(addr, big.NewInt(42)))
	assert.True(t, repo.Exists(addr))

	addr2 := meridian.BytesToAddress([]byte("ghost2"))
	assert.Equal(t, uint64(1), repo.IncreaseNonce(addr2))
	assert.True(t, repo.Exists(addr2))
}

func TestAbsentAccountReads(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("nobody"))

	assert.Nil(t, repo.GetAccountState(addr))
	assert.Equal(t, uint64(0), repo.GetNonce(addr))
	assert.Equal(t, new(big.Int), repo.GetBalance(addr))
	assert.Equal(t, meridian.EmptyCodeHash, repo.GetCodeHash(addr))
	assert.Equal(t, M([]byte(nil), nil), M(repo.GetCode(addr)))
	assert.False(t, repo.Exists(addr))
}

func TestTransfer(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	bob := meridian.BytesToAddress([]byte("bob"))

	repo.AddBalance(alice, big.NewInt(100))
	repo.Transfer(alice, bob, big.NewInt(30))
	assert.Equal(t, big.NewInt(70), repo.GetBalance(alice))
	assert.Equal(t, big.NewInt(30), repo.GetBalance(bob))
}

func TestStorage(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("contract"))
	key := meridian.BytesToBytes32([]byte{1})
	value := meridian.BytesToBytes32([]byte{0xca, 0xfe})

	assert.Nil(t, repo.AddStorageRow(addr, key, value))
	assert.Equal(t, M(value, nil), M(repo.GetStorageValue(addr, key)))
	assert.Equal(t, M([]byte{0xca, 0xfe}, nil), M(repo.GetStorageBytes(addr, key)))

	// zero word deletes the row
	assert.Nil(t, repo.AddStorageRow(addr, key, meridian.Bytes32{}))
	assert.Equal(t, M(meridian.Bytes32{}, nil), M(repo.GetStorageValue(addr, key)))
	assert.Equal(t, triedb.EmptyRoot, repo.GetAccountState(addr).StorageRoot)
}

func TestCode(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("contract"))
	code := []byte{0x60, 0x01}

	assert.Nil(t, repo.SaveCode(addr, code))
	assert.Equal(t, M(code, nil), M(repo.GetCode(addr)))
	assert.Equal(t, meridian.Keccak256(code), repo.GetCodeHash(addr))
	assert.True(t, repo.GetAccountState(addr).HasCode())
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("doomed"))

	repo.AddBalance(addr, big.NewInt(1))
	root := repo.Root()
	repo.Delete(addr)
	assert.False(t, repo.Exists(addr))
	assert.Equal(t, triedb.EmptyRoot, repo.Root())
	assert.NotEqual(t, root, repo.Root())
}

func TestHibernate(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("sleepy"))

	repo.AddBalance(addr, big.NewInt(5))
	repo.IncreaseNonce(addr)
	assert.Nil(t, repo.SaveCode(addr, []byte{1, 2, 3}))
	assert.Nil(t, repo.AddStorageRow(addr, meridian.BytesToBytes32([]byte{1}), meridian.BytesToBytes32([]byte{2})))

	repo.Hibernate(addr)

	acc := repo.GetAccountState(addr)
	assert.True(t, acc.Hibernated())
	assert.Equal(t, big.NewInt(5), repo.GetBalance(addr))
	assert.Equal(t, uint64(1), repo.GetNonce(addr))
	assert.Equal(t, M([]byte(nil), nil), M(repo.GetCode(addr)))
	assert.Equal(t, M(meridian.Bytes32{}, nil), M(repo.GetStorageValue(addr, meridian.BytesToBytes32([]byte{1}))))
}

func TestRootDeterministic(t *testing.T) {
	addrs := []meridian.Address{
		meridian.BytesToAddress([]byte("x")),
		meridian.BytesToAddress([]byte("y")),
		meridian.BytesToAddress([]byte("z")),
	}

	repo1 := newTestRepo(t)
	for _, addr := range addrs {
		repo1.AddBalance(addr, big.NewInt(1))
	}
	repo2 := newTestRepo(t)
	for i := len(addrs) - 1; i >= 0; i-- {
		repo2.AddBalance(addrs[i], big.NewInt(1))
	}
	assert.Equal(t, repo1.Root(), repo2.Root())
}

func TestFlushAndSyncToRoot(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	store := triedb.New(db)
	repo, err := New(store, triedb.EmptyRoot)
	assert.Nil(t, err)

	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(10))
	root1 := repo.Root()
	assert.Nil(t, repo.Flush())

	repo.AddBalance(alice, big.NewInt(5))
	root2 := repo.Root()
	assert.Nil(t, repo.Flush())
	assert.NotEqual(t, root1, root2)

	// time travel back to the first flushed state
	assert.Nil(t, repo.SyncToRoot(root1))
	assert.Equal(t, big.NewInt(10), repo.GetBalance(alice))
	assert.Equal(t, root1, repo.Root())

	// and forward again
	assert.Nil(t, repo.SyncToRoot(root2))
	assert.Equal(t, big.NewInt(15), repo.GetBalance(alice))
}

func TestFlushPersistsCodeAndStorage(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	store := triedb.New(db)
	repo, err := New(store, triedb.EmptyRoot)
	assert.Nil(t, err)

	addr := meridian.BytesToAddress([]byte("contract"))
	key := meridian.BytesToBytes32([]byte{7})
	assert.Nil(t, repo.SaveCode(addr, []byte{0xfe, 0xed}))
	assert.Nil(t, repo.AddStorageBytes(addr, key, []byte{0xbe, 0xef}))
	root := repo.Root()
	assert.Nil(t, repo.Flush())

	// a fresh view over the same store sees everything
	fresh, err := New(store, root)
	assert.Nil(t, err)
	assert.Equal(t, M([]byte{0xfe, 0xed}, nil), M(fresh.GetCode(addr)))
	assert.Equal(t, M([]byte{0xbe, 0xef}, nil), M(fresh.GetStorageBytes(addr, key)))
}

func TestSnapshotTo(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))

	repo.AddBalance(alice, big.NewInt(1))
	root := repo.Root()
	assert.Nil(t, repo.Flush())
	repo.AddBalance(alice, big.NewInt(1))

	snap, err := repo.SnapshotTo(root)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1), snap.GetBalance(alice))
	// the live view is unaffected
	assert.Equal(t, big.NewInt(2), repo.GetBalance(alice))
}

func TestFlushNoReconnect(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	store := triedb.New(db)
	repo, err := New(store, triedb.EmptyRoot)
	assert.Nil(t, err)

	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(3))
	root := repo.Root()
	assert.Nil(t, repo.FlushNoReconnect())

	// the state landed, reachable through an explicit sync
	assert.Nil(t, repo.SyncToRoot(root))
	assert.Equal(t, big.NewInt(3), repo.GetBalance(alice))
}

func TestUpdateBatch(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("batch"))

	acc := newAccount()
	acc.Nonce = 4
	acc.Balance = big.NewInt(1000)
	det := newContractDetails(addr)
	det.Code = []byte{1}
	det.SetStorage(meridian.BytesToBytes32([]byte{1}), []byte{2})
	acc.CodeHash = det.CodeHash()
	acc.StorageRoot = det.StorageRoot()

	repo.UpdateBatch(
		map[meridian.Address]*Account{addr: acc},
		map[meridian.Address]*ContractDetails{addr: det},
	)

	assert.Equal(t, uint64(4), repo.GetNonce(addr))
	assert.Equal(t, big.NewInt(1000), repo.GetBalance(addr))
	assert.Equal(t, M([]byte{1}, nil), M(repo.GetCode(addr)))
	assert.Equal(t, M([]byte{2}, nil), M(repo.GetStorageBytes(addr, meridian.BytesToBytes32([]byte{1}))))
}

func TestLoadAccount(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("loaded"))
	repo.AddBalance(addr, big.NewInt(7))

	accounts := make(map[meridian.Address]*Account)
	details := make(map[meridian.Address]*ContractDetails)
	assert.Nil(t, repo.LoadAccount(addr, accounts, details))

	assert.Equal(t, big.NewInt(7), accounts[addr].Balance)
	assert.NotNil(t, details[addr])

	// copies, not aliases
	accounts[addr].Balance.SetInt64(0)
	assert.Equal(t, big.NewInt(7), repo.GetBalance(addr))

	// absent accounts materialize as fresh records in the caches only
	ghost := meridian.BytesToAddress([]byte("ghost"))
	assert.Nil(t, repo.LoadAccount(ghost, accounts, details))
	assert.Equal(t, new(big.Int), accounts[ghost].Balance)
	assert.False(t, repo.Exists(ghost))
}

func TestAccountKeysSorted(t *testing.T) {
	repo := newTestRepo(t)
	repo.AddBalance(meridian.BytesToAddress([]byte{0x02}), big.NewInt(1))
	repo.AddBalance(meridian.BytesToAddress([]byte{0x01}), big.NewInt(1))
	repo.AddBalance(meridian.BytesToAddress([]byte{0x03}), big.NewInt(1))

	keys := repo.AccountKeys()
	assert.Equal(t, 3, len(keys))
	for i := 1; i < len(keys); i++ {
		assert.True(t, keys[i-1].String() < keys[i].String())
	}
}

func TestDurableLayerMisusePanics(t *testing.T) {
	repo := newTestRepo(t)
	assert.Panics(t, func() { repo.Commit() })
	assert.Panics(t, func() { repo.Rollback() })
}
