// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/meridian"
)

func TestDumpState(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	contract := meridian.BytesToAddress([]byte("contract"))

	repo.AddBalance(alice, big.NewInt(1000))
	assert.Nil(t, repo.SaveCode(contract, []byte{0x60, 0x01}))
	assert.Nil(t, repo.AddStorageBytes(contract, meridian.BytesToBytes32([]byte{1}), []byte{0xff}))

	blockHash := meridian.Keccak256([]byte("block"))
	var buf bytes.Buffer
	assert.Nil(t, repo.DumpState(&buf, 42, blockHash, 21000, 3, []byte{0xaa}))

	var dump Dump
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, uint32(42), dump.BlockNumber)
	assert.Equal(t, blockHash.String(), dump.BlockHash)
	assert.Equal(t, uint64(21000), dump.GasUsed)
	assert.Equal(t, 3, dump.TxNumber)
	assert.Equal(t, "0xaa", dump.TxHash)
	assert.Equal(t, repo.Root().String(), dump.Root)
	assert.Equal(t, 2, len(dump.Accounts))

	da := dump.Accounts[alice.String()]
	assert.Equal(t, "1000", da.Balance)
	assert.Empty(t, da.Code)

	dc := dump.Accounts[contract.String()]
	assert.Equal(t, "0x6001", dc.Code)
	assert.Equal(t, 1, len(dc.Storage))
}

func TestDumpStateOnTrackingLayer(t *testing.T) {
	repo := newTestRepo(t)
	alice := meridian.BytesToAddress([]byte("alice"))
	repo.AddBalance(alice, big.NewInt(1))

	track := repo.StartTracking()
	bob := meridian.BytesToAddress([]byte("bob"))
	track.AddBalance(bob, big.NewInt(2))

	var buf bytes.Buffer
	assert.Nil(t, track.DumpState(&buf, 0, meridian.Bytes32{}, 0, 0, nil))

	var dump Dump
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, 2, len(dump.Accounts))
	track.Rollback()
}
