// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"
	"math/big"

	"github.com/meridianchain/meridian/meridian"
)

// tracked is a revocable layer over a parent. It holds only the delta:
// records are copied from the parent on first touch, so the parent observes
// nothing until Commit writes the cache back.
type tracked struct {
	parent       layer
	accounts     map[meridian.Address]*Account
	details      map[meridian.Address]*ContractDetails
	deleted      map[meridian.Address]bool
	liveChildren int
	closed       bool
}

func newTracked(parent layer) *tracked {
	return &tracked{
		parent:   parent,
		accounts: make(map[meridian.Address]*Account),
		details:  make(map[meridian.Address]*ContractDetails),
		deleted:  make(map[meridian.Address]bool),
	}
}

func (t *tracked) ensureOpen() {
	if t.closed {
		panic("state: use of closed tracking layer")
	}
}

func (t *tracked) mutate() {
	t.ensureOpen()
	if t.liveChildren > 0 {
		panic("state: mutating layer with live child layer")
	}
}

// ownAccount returns this layer's copy of the account, copying from the
// parent on first touch. With create set, absent accounts come to life.
func (t *tracked) ownAccount(addr meridian.Address, create bool) *Account {
	if t.deleted[addr] {
		if !create {
			return nil
		}
		delete(t.deleted, addr)
		acc := newAccount()
		t.accounts[addr] = acc
		t.details[addr] = newContractDetails(addr)
		return acc
	}
	if acc, ok := t.accounts[addr]; ok {
		return acc
	}
	if parentAcc := t.parent.GetAccountState(addr); parentAcc != nil {
		cpy := parentAcc.Copy()
		t.accounts[addr] = cpy
		return cpy
	}
	if !create {
		return nil
	}
	acc := newAccount()
	t.accounts[addr] = acc
	t.details[addr] = newContractDetails(addr)
	return acc
}

// ownDetails returns this layer's copy of the contract details.
func (t *tracked) ownDetails(addr meridian.Address, create bool) (*ContractDetails, error) {
	if t.deleted[addr] {
		if !create {
			return nil, nil
		}
		t.ownAccount(addr, true)
		return t.details[addr], nil
	}
	if det, ok := t.details[addr]; ok {
		return det, nil
	}
	parentDet, err := t.parent.GetContractDetails(addr)
	if err != nil {
		return nil, err
	}
	if parentDet != nil {
		cpy := parentDet.Copy()
		t.details[addr] = cpy
		return cpy, nil
	}
	if !create {
		return nil, nil
	}
	t.ownAccount(addr, true)
	if det, ok := t.details[addr]; ok {
		return det, nil
	}
	det := newContractDetails(addr)
	t.details[addr] = det
	return det, nil
}

func (t *tracked) CreateAccount(addr meridian.Address) *Account {
	t.mutate()
	if acc := t.ownAccount(addr, false); acc != nil {
		return acc
	}
	return t.ownAccount(addr, true)
}

func (t *tracked) Exists(addr meridian.Address) bool {
	t.ensureOpen()
	if t.deleted[addr] {
		return false
	}
	if _, ok := t.accounts[addr]; ok {
		return true
	}
	return t.parent.Exists(addr)
}

func (t *tracked) GetAccountState(addr meridian.Address) *Account {
	t.ensureOpen()
	return t.ownAccount(addr, false)
}

func (t *tracked) Delete(addr meridian.Address) {
	t.mutate()
	t.deleted[addr] = true
	delete(t.accounts, addr)
	delete(t.details, addr)
}

func (t *tracked) Hibernate(addr meridian.Address) {
	t.mutate()
	acc := t.ownAccount(addr, false)
	if acc == nil {
		return
	}
	acc.hibernate()
	t.details[addr] = newContractDetails(addr)
}

func (t *tracked) GetNonce(addr meridian.Address) uint64 {
	t.ensureOpen()
	if acc := t.ownAccount(addr, false); acc != nil {
		return acc.Nonce
	}
	return 0
}

func (t *tracked) IncreaseNonce(addr meridian.Address) uint64 {
	t.mutate()
	acc := t.ownAccount(addr, true)
	acc.Nonce++
	return acc.Nonce
}

func (t *tracked) GetBalance(addr meridian.Address) *big.Int {
	t.ensureOpen()
	if acc := t.ownAccount(addr, false); acc != nil {
		return new(big.Int).Set(acc.Balance)
	}
	return new(big.Int)
}

func (t *tracked) AddBalance(addr meridian.Address, delta *big.Int) *big.Int {
	t.mutate()
	acc := t.ownAccount(addr, true)
	acc.Balance.Add(acc.Balance, delta)
	return new(big.Int).Set(acc.Balance)
}

func (t *tracked) Transfer(from, to meridian.Address, value *big.Int) {
	t.AddBalance(from, new(big.Int).Neg(value))
	t.AddBalance(to, value)
}

func (t *tracked) GetContractDetails(addr meridian.Address) (*ContractDetails, error) {
	t.ensureOpen()
	return t.ownDetails(addr, false)
}

func (t *tracked) SaveCode(addr meridian.Address, code []byte) error {
	t.mutate()
	det, err := t.ownDetails(addr, true)
	if err != nil {
		return err
	}
	det.Code = append([]byte(nil), code...)
	if len(det.Code) == 0 {
		det.Code = nil
	}
	acc := t.ownAccount(addr, true)
	acc.CodeHash = det.CodeHash()
	return nil
}

func (t *tracked) GetCode(addr meridian.Address) ([]byte, error) {
	t.ensureOpen()
	det, err := t.ownDetails(addr, false)
	if err != nil || det == nil {
		return nil, err
	}
	return det.Code, nil
}

func (t *tracked) GetCodeHash(addr meridian.Address) meridian.Bytes32 {
	t.ensureOpen()
	if acc := t.ownAccount(addr, false); acc != nil {
		return acc.CodeHash
	}
	return meridian.EmptyCodeHash
}

func (t *tracked) AddStorageRow(addr meridian.Address, key, value meridian.Bytes32) error {
	return t.AddStorageBytes(addr, key, trimWord(value))
}

func (t *tracked) AddStorageBytes(addr meridian.Address, key meridian.Bytes32, value []byte) error {
	t.mutate()
	det, err := t.ownDetails(addr, true)
	if err != nil {
		return err
	}
	det.SetStorage(key, value)
	acc := t.ownAccount(addr, true)
	acc.StorageRoot = det.StorageRoot()
	return nil
}

func (t *tracked) GetStorageValue(addr meridian.Address, key meridian.Bytes32) (meridian.Bytes32, error) {
	raw, err := t.GetStorageBytes(addr, key)
	if err != nil {
		return meridian.Bytes32{}, err
	}
	return meridian.BytesToBytes32(raw), nil
}

func (t *tracked) GetStorageBytes(addr meridian.Address, key meridian.Bytes32) ([]byte, error) {
	t.ensureOpen()
	det, err := t.ownDetails(addr, false)
	if err != nil || det == nil {
		return nil, err
	}
	return det.GetStorage(key), nil
}

func (t *tracked) AccountKeys() []meridian.Address {
	t.ensureOpen()
	return sortedKeys(t.worldAccounts())
}

func (t *tracked) UpdateBatch(accounts map[meridian.Address]*Account, details map[meridian.Address]*ContractDetails) {
	t.mutate()
	for addr, acc := range accounts {
		t.UpdateAccountState(addr, acc)
	}
	for addr, det := range details {
		t.UpdateContractDetails(addr, det)
	}
}

func (t *tracked) UpdateAccountState(addr meridian.Address, acc *Account) {
	t.mutate()
	delete(t.deleted, addr)
	t.accounts[addr] = acc
}

func (t *tracked) UpdateContractDetails(addr meridian.Address, det *ContractDetails) {
	t.mutate()
	delete(t.deleted, addr)
	det.Address = addr
	t.details[addr] = det
}

func (t *tracked) LoadAccount(addr meridian.Address, cacheAccounts map[meridian.Address]*Account, cacheDetails map[meridian.Address]*ContractDetails) error {
	t.ensureOpen()
	if acc := t.ownAccount(addr, false); acc != nil {
		cacheAccounts[addr] = acc.Copy()
	} else {
		cacheAccounts[addr] = newAccount()
	}

	det, err := t.ownDetails(addr, false)
	if err != nil {
		return err
	}
	if det != nil {
		cacheDetails[addr] = det.Copy()
	} else {
		cacheDetails[addr] = newContractDetails(addr)
	}
	return nil
}

func (t *tracked) StartTracking() Repository {
	t.ensureOpen()
	t.liveChildren++
	return newTracked(t)
}

// Commit merges this layer's records into the parent and closes the layer.
func (t *tracked) Commit() {
	t.ensureOpen()
	if t.liveChildren > 0 {
		panic("state: commit with live child layer")
	}
	t.closed = true
	t.parent.releaseChild()

	for addr := range t.deleted {
		t.parent.Delete(addr)
	}
	for addr, acc := range t.accounts {
		t.parent.UpdateAccountState(addr, acc)
	}
	for addr, det := range t.details {
		t.parent.UpdateContractDetails(addr, det)
	}
}

// Rollback discards this layer entirely and closes it.
func (t *tracked) Rollback() {
	t.ensureOpen()
	if t.liveChildren > 0 {
		panic("state: rollback with live child layer")
	}
	t.closed = true
	t.parent.releaseChild()

	t.accounts = nil
	t.details = nil
	t.deleted = nil
}

func (t *tracked) Root() meridian.Bytes32 {
	t.ensureOpen()
	return computeRoot(t.worldAccounts())
}

func (t *tracked) Flush() error {
	panic("state: flush on tracking layer")
}

func (t *tracked) FlushNoReconnect() error {
	panic("state: flush on tracking layer")
}

func (t *tracked) SyncToRoot(meridian.Bytes32) error {
	panic("state: sync on tracking layer")
}

func (t *tracked) SnapshotTo(meridian.Bytes32) (Repository, error) {
	panic("state: snapshot on tracking layer")
}

func (t *tracked) DumpState(w io.Writer, blockNum uint32, blockHash meridian.Bytes32, gasUsed uint64, txNumber int, txHash []byte) error {
	t.ensureOpen()
	return dumpState(t, w, blockNum, blockHash, gasUsed, txNumber, txHash)
}

func (t *tracked) worldAccounts() map[meridian.Address]*Account {
	m := t.parent.worldAccounts()
	for addr := range t.deleted {
		delete(m, addr)
	}
	for addr, acc := range t.accounts {
		m[addr] = acc
	}
	return m
}

func (t *tracked) releaseChild() {
	if t.liveChildren > 0 {
		t.liveChildren--
	}
}
