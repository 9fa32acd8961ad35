// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/meridian"
)

func TestTrackingCommit(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(100))

	track := repo.StartTracking()
	track.AddBalance(alice, big.NewInt(50))
	track.IncreaseNonce(alice)

	// parent unaffected until commit
	assert.Equal(t, big.NewInt(100), repo.GetBalance(alice))
	assert.Equal(t, uint64(0), repo.GetNonce(alice))
	assert.Equal(t, big.NewInt(150), track.GetBalance(alice))

	track.Commit()
	assert.Equal(t, big.NewInt(150), repo.GetBalance(alice))
	assert.Equal(t, uint64(1), repo.GetNonce(alice))
}

func TestTrackingRollback(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(100))

	track := repo.StartTracking()
	track.AddBalance(alice, big.NewInt(50))
	bob := meridian.BytesToAddress([]byte("bob"))
	track.CreateAccount(bob)

	track.Rollback()
	assert.Equal(t, big.NewInt(100), repo.GetBalance(alice))
	assert.False(t, repo.Exists(bob))
}

func TestTrackingFallThroughReads(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("contract"))
	key := meridian.BytesToBytes32([]byte{1})
	assert.Nil(t, repo.SaveCode(addr, []byte{9}))
	assert.Nil(t, repo.AddStorageBytes(addr, key, []byte{8}))

	track := repo.StartTracking()
	assert.True(t, track.Exists(addr))
	assert.Equal(t, M([]byte{9}, nil), M(track.GetCode(addr)))
	assert.Equal(t, M([]byte{8}, nil), M(track.GetStorageBytes(addr, key)))
	assert.Equal(t, meridian.Keccak256([]byte{9}), track.GetCodeHash(addr))
	track.Rollback()
}

func TestTrackingDelete(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("doomed"))
	repo.AddBalance(addr, big.NewInt(1))

	track := repo.StartTracking()
	track.Delete(addr)
	assert.False(t, track.Exists(addr))
	assert.True(t, repo.Exists(addr))

	track.Commit()
	assert.False(t, repo.Exists(addr))
}

func TestTrackingDeleteThenRecreate(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("phoenix"))
	repo.AddBalance(addr, big.NewInt(10))

	track := repo.StartTracking()
	track.Delete(addr)
	track.AddBalance(addr, big.NewInt(1))
	assert.Equal(t, big.NewInt(1), track.GetBalance(addr))

	track.Commit()
	assert.Equal(t, big.NewInt(1), repo.GetBalance(addr))
}

func TestTrackingNested(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(1))

	outer := repo.StartTracking()
	outer.AddBalance(alice, big.NewInt(2))

	inner := outer.StartTracking()
	inner.AddBalance(alice, big.NewInt(4))
	assert.Equal(t, big.NewInt(7), inner.GetBalance(alice))
	inner.Commit()

	assert.Equal(t, big.NewInt(7), outer.GetBalance(alice))
	assert.Equal(t, big.NewInt(1), repo.GetBalance(alice))
	outer.Commit()
	assert.Equal(t, big.NewInt(7), repo.GetBalance(alice))
}

func TestTrackingRoot(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(1))

	track := repo.StartTracking()
	assert.Equal(t, repo.Root(), track.Root())

	track.AddBalance(alice, big.NewInt(1))
	divergent := track.Root()
	assert.NotEqual(t, repo.Root(), divergent)

	track.Commit()
	assert.Equal(t, divergent, repo.Root())
}

func TestTrackingParentFrozen(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))

	track := repo.StartTracking()
	assert.Panics(t, func() { repo.AddBalance(alice, big.NewInt(1)) })
	assert.Panics(t, func() { repo.CreateAccount(alice) })
	track.Rollback()

	// released after rollback
	repo.AddBalance(alice, big.NewInt(1))
	assert.Equal(t, big.NewInt(1), repo.GetBalance(alice))
}

func TestTrackingUseAfterClose(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))

	track := repo.StartTracking()
	track.Commit()
	assert.Panics(t, func() { track.GetBalance(alice) })
	assert.Panics(t, func() { track.Commit() })

	track = repo.StartTracking()
	track.Rollback()
	assert.Panics(t, func() { track.AddBalance(alice, big.NewInt(1)) })
}

func TestTrackingFlushUnsupported(t *testing.T) {
	repo := newTestRepo(t)
	track := repo.StartTracking()
	defer track.Rollback()

	assert.Panics(t, func() { track.Flush() })
	assert.Panics(t, func() { track.FlushNoReconnect() })
	assert.Panics(t, func() { track.SyncToRoot(meridian.Bytes32{}) })
	assert.Panics(t, func() { track.SnapshotTo(meridian.Bytes32{}) })
}

func TestTrackingHibernate(t *testing.T) {
	repo := newTestRepo(t)
	addr := meridian.BytesToAddress([]byte("sleepy"))
	assert.Nil(t, repo.SaveCode(addr, []byte{1}))
	repo.AddBalance(addr, big.NewInt(5))

	track := repo.StartTracking()
	track.Hibernate(addr)
	assert.True(t, track.GetAccountState(addr).Hibernated())
	assert.Equal(t, M([]byte(nil), nil), M(track.GetCode(addr)))
	// parent still sees the live account
	assert.False(t, repo.GetAccountState(addr).Hibernated())

	track.Commit()
	assert.True(t, repo.GetAccountState(addr).Hibernated())
	assert.Equal(t, M([]byte(nil), nil), M(repo.GetCode(addr)))
	assert.Equal(t, big.NewInt(5), repo.GetBalance(addr))
}
