// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"math/big"
	"sort"

	lru "github.com/hashicorp/golang-lru"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

var codeCache, _ = lru.NewARC(512)

// base is the durable layer: a materialized view of the world state at some
// root of the trie store. All other layers bottom out here.
type base struct {
	store        *triedb.Store
	root         meridian.Bytes32
	accounts     map[meridian.Address]*Account
	details      map[meridian.Address]*ContractDetails
	liveChildren int
}

// New creates a repository positioned at the given root.
func New(store *triedb.Store, root meridian.Bytes32) (Repository, error) {
	r := &base{store: store}
	if err := r.SyncToRoot(root); err != nil {
		return nil, err
	}
	return r, nil
}

// mutate guards every mutating operation: a parent layer must not change
// under a live child, since the child's fall-through reads would observe a
// moving target.
func (r *base) mutate() {
	if r.liveChildren > 0 {
		panic("state: mutating layer with live child layer")
	}
}

func (r *base) getOrCreateAccount(addr meridian.Address) *Account {
	if acc, ok := r.accounts[addr]; ok {
		return acc
	}
	acc := newAccount()
	r.accounts[addr] = acc
	r.details[addr] = newContractDetails(addr)
	return acc
}

// loadDetails materializes the contract details of an existing account,
// reading storage and code from the trie store on first touch.
func (r *base) loadDetails(addr meridian.Address) (*ContractDetails, error) {
	if det, ok := r.details[addr]; ok {
		return det, nil
	}
	acc, ok := r.accounts[addr]
	if !ok {
		return nil, nil
	}

	det := newContractDetails(addr)
	if acc.HasCode() {
		if cached, ok := codeCache.Get(string(acc.CodeHash[:])); ok {
			det.Code = cached.([]byte)
		} else {
			code, err := r.store.GetBlob(acc.CodeHash)
			if err != nil {
				return nil, &Error{err}
			}
			codeCache.Add(string(acc.CodeHash[:]), code)
			det.Code = code
		}
	}

	pairs, err := r.store.GetNode(acc.StorageRoot)
	if err != nil {
		return nil, &Error{err}
	}
	for _, p := range pairs {
		det.Storage[meridian.BytesToBytes32(p.Key)] = p.Value
	}

	metricDetailsLoaded().AddWithLabel(1, map[string]string{"target": "triedb"})
	r.details[addr] = det
	return det, nil
}

func (r *base) loadOrCreateDetails(addr meridian.Address) (*ContractDetails, error) {
	det, err := r.loadDetails(addr)
	if err != nil {
		return nil, err
	}
	if det == nil {
		r.getOrCreateAccount(addr)
		det = r.details[addr]
	}
	return det, nil
}

func (r *base) CreateAccount(addr meridian.Address) *Account {
	r.mutate()
	return r.getOrCreateAccount(addr)
}

func (r *base) Exists(addr meridian.Address) bool {
	_, ok := r.accounts[addr]
	return ok
}

func (r *base) GetAccountState(addr meridian.Address) *Account {
	return r.accounts[addr]
}

func (r *base) Delete(addr meridian.Address) {
	r.mutate()
	delete(r.accounts, addr)
	delete(r.details, addr)
}

func (r *base) Hibernate(addr meridian.Address) {
	r.mutate()
	acc, ok := r.accounts[addr]
	if !ok {
		return
	}
	acc.hibernate()
	r.details[addr] = newContractDetails(addr)
}

func (r *base) GetNonce(addr meridian.Address) uint64 {
	if acc, ok := r.accounts[addr]; ok {
		return acc.Nonce
	}
	return 0
}

func (r *base) IncreaseNonce(addr meridian.Address) uint64 {
	r.mutate()
	acc := r.getOrCreateAccount(addr)
	acc.Nonce++
	return acc.Nonce
}

func (r *base) GetBalance(addr meridian.Address) *big.Int {
	if acc, ok := r.accounts[addr]; ok {
		return new(big.Int).Set(acc.Balance)
	}
	return new(big.Int)
}

func (r *base) AddBalance(addr meridian.Address, delta *big.Int) *big.Int {
	r.mutate()
	acc := r.getOrCreateAccount(addr)
	acc.Balance.Add(acc.Balance, delta)
	return new(big.Int).Set(acc.Balance)
}

func (r *base) Transfer(from, to meridian.Address, value *big.Int) {
	// two independent balance updates; see Repository.Transfer
	r.AddBalance(from, new(big.Int).Neg(value))
	r.AddBalance(to, value)
}

func (r *base) GetContractDetails(addr meridian.Address) (*ContractDetails, error) {
	return r.loadDetails(addr)
}

func (r *base) SaveCode(addr meridian.Address, code []byte) error {
	r.mutate()
	det, err := r.loadOrCreateDetails(addr)
	if err != nil {
		return err
	}
	det.Code = append([]byte(nil), code...)
	if len(det.Code) == 0 {
		det.Code = nil
	}
	acc := r.getOrCreateAccount(addr)
	acc.CodeHash = det.CodeHash()
	if len(det.Code) > 0 {
		codeCache.Add(string(acc.CodeHash[:]), det.Code)
	}
	return nil
}

func (r *base) GetCode(addr meridian.Address) ([]byte, error) {
	det, err := r.loadDetails(addr)
	if err != nil || det == nil {
		return nil, err
	}
	return det.Code, nil
}

func (r *base) GetCodeHash(addr meridian.Address) meridian.Bytes32 {
	if acc, ok := r.accounts[addr]; ok {
		return acc.CodeHash
	}
	return meridian.EmptyCodeHash
}

func (r *base) AddStorageRow(addr meridian.Address, key, value meridian.Bytes32) error {
	return r.AddStorageBytes(addr, key, trimWord(value))
}

func (r *base) AddStorageBytes(addr meridian.Address, key meridian.Bytes32, value []byte) error {
	r.mutate()
	det, err := r.loadOrCreateDetails(addr)
	if err != nil {
		return err
	}
	det.SetStorage(key, value)
	acc := r.getOrCreateAccount(addr)
	acc.StorageRoot = det.StorageRoot()
	return nil
}

func (r *base) GetStorageValue(addr meridian.Address, key meridian.Bytes32) (meridian.Bytes32, error) {
	raw, err := r.GetStorageBytes(addr, key)
	if err != nil {
		return meridian.Bytes32{}, err
	}
	return meridian.BytesToBytes32(raw), nil
}

func (r *base) GetStorageBytes(addr meridian.Address, key meridian.Bytes32) ([]byte, error) {
	det, err := r.loadDetails(addr)
	if err != nil || det == nil {
		return nil, err
	}
	return det.GetStorage(key), nil
}

func (r *base) AccountKeys() []meridian.Address {
	return sortedKeys(r.accounts)
}

func (r *base) UpdateBatch(accounts map[meridian.Address]*Account, details map[meridian.Address]*ContractDetails) {
	r.mutate()
	for addr, acc := range accounts {
		r.UpdateAccountState(addr, acc)
	}
	for addr, det := range details {
		r.UpdateContractDetails(addr, det)
	}
}

func (r *base) UpdateAccountState(addr meridian.Address, acc *Account) {
	r.mutate()
	r.accounts[addr] = acc
}

func (r *base) UpdateContractDetails(addr meridian.Address, det *ContractDetails) {
	r.mutate()
	det.Address = addr
	r.details[addr] = det
}

func (r *base) LoadAccount(addr meridian.Address, cacheAccounts map[meridian.Address]*Account, cacheDetails map[meridian.Address]*ContractDetails) error {
	acc := r.GetAccountState(addr)
	if acc == nil {
		cacheAccounts[addr] = newAccount()
	} else {
		cacheAccounts[addr] = acc.Copy()
	}

	det, err := r.loadDetails(addr)
	if err != nil {
		return err
	}
	if det == nil {
		cacheDetails[addr] = newContractDetails(addr)
	} else {
		cacheDetails[addr] = det.Copy()
	}
	return nil
}

func (r *base) StartTracking() Repository {
	r.liveChildren++
	return newTracked(r)
}

func (r *base) Commit() {
	panic("state: commit on durable layer")
}

func (r *base) Rollback() {
	panic("state: rollback on durable layer")
}

func (r *base) Root() meridian.Bytes32 {
	return computeRoot(r.accounts)
}

// persist stages every reachable storage node, code blob and the world node
// into one batch and writes it. Partial flushes are never rolled back here;
// recovery happens via SyncToRoot at next boot.
func (r *base) persist() (meridian.Bytes32, error) {
	batch := r.store.NewBatch()

	for addr, det := range r.details {
		if _, ok := r.accounts[addr]; !ok {
			continue
		}
		if len(det.Code) > 0 {
			if _, err := triedb.StageBlob(batch, det.Code); err != nil {
				return meridian.Bytes32{}, &Error{err}
			}
		}
		if len(det.Storage) > 0 {
			if _, err := triedb.StageNode(batch, det.storagePairs()); err != nil {
				return meridian.Bytes32{}, &Error{err}
			}
		}
	}

	newRoot, err := triedb.StageNode(batch, worldPairs(r.accounts))
	if err != nil {
		return meridian.Bytes32{}, &Error{err}
	}
	if err := batch.Write(); err != nil {
		return meridian.Bytes32{}, &Error{err}
	}
	return newRoot, nil
}

func (r *base) Flush() error {
	newRoot, err := r.persist()
	if err != nil {
		return err
	}
	r.root = newRoot
	return nil
}

func (r *base) FlushNoReconnect() error {
	_, err := r.persist()
	return err
}

func (r *base) SyncToRoot(root meridian.Bytes32) error {
	pairs, err := r.store.GetNode(root)
	if err != nil {
		return &Error{err}
	}

	accounts := make(map[meridian.Address]*Account, len(pairs))
	for _, p := range pairs {
		acc, err := decodeAccount(p.Value)
		if err != nil {
			return &Error{err}
		}
		accounts[meridian.BytesToAddress(p.Key)] = acc
	}

	r.root = root
	r.accounts = accounts
	r.details = make(map[meridian.Address]*ContractDetails)
	// outstanding child layers derive from a view that no longer exists
	r.liveChildren = 0

	metricAccountsLoaded().AddWithLabel(int64(len(accounts)), map[string]string{"target": "sync"})
	return nil
}

func (r *base) SnapshotTo(root meridian.Bytes32) (Repository, error) {
	return New(r.store, root)
}

func (r *base) DumpState(w io.Writer, blockNum uint32, blockHash meridian.Bytes32, gasUsed uint64, txNumber int, txHash []byte) error {
	return dumpState(r, w, blockNum, blockHash, gasUsed, txNumber, txHash)
}

func (r *base) worldAccounts() map[meridian.Address]*Account {
	m := make(map[meridian.Address]*Account, len(r.accounts))
	for addr, acc := range r.accounts {
		m[addr] = acc
	}
	return m
}

func (r *base) releaseChild() {
	if r.liveChildren > 0 {
		r.liveChildren--
	}
}

func sortedKeys(accounts map[meridian.Address]*Account) []meridian.Address {
	keys := make([]meridian.Address, 0, len(accounts))
	for addr := range accounts {
		keys = append(keys, addr)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}
