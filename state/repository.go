// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"io"
	"math/big"

	"github.com/meridianchain/meridian/meridian"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying storage-engine fault, unchanged.
func (e *Error) Unwrap() error {
	return e.cause
}

// Repository presents a mutable, address-keyed view of the world state with
// nested, revocable layers.
//
// A repository is not internally synchronized: one writer at a time per
// layer. A parent layer must not be mutated while a child obtained from
// StartTracking is live; doing so panics. Economic invariants (balance
// non-negativity, account presence on required reads) are the caller's
// responsibility and are not checked here.
type Repository interface {
	// CreateAccount creates a zero-balance, zero-nonce record and returns
	// its handle. A no-op returning the existing handle if the account
	// already exists; callers that care must check Exists first.
	CreateAccount(addr meridian.Address) *Account

	// Exists returns whether an account exists at the given address.
	Exists(addr meridian.Address) bool

	// GetAccountState returns the account handle, or nil if absent. The
	// caller owns the handle until it calls back into the repository to
	// persist changes.
	GetAccountState(addr meridian.Address) *Account

	// Delete marks the account and its storage for removal in this layer.
	Delete(addr meridian.Address)

	// Hibernate soft-resets the account: code and storage are shed, the
	// hibernated flag is set, identity (address, nonce, balance) is kept.
	Hibernate(addr meridian.Address)

	// GetNonce returns the account nonce, zero if absent.
	GetNonce(addr meridian.Address) uint64

	// IncreaseNonce increments the account nonce by one and returns the new
	// value, creating the account if absent. Atomic within this layer only.
	IncreaseNonce(addr meridian.Address) uint64

	// GetBalance returns a copy of the account balance, zero if absent.
	GetBalance(addr meridian.Address) *big.Int

	// AddBalance applies delta (may be negative) to the account balance and
	// returns the new value, creating the account if absent. No
	// non-negativity check is performed.
	AddBalance(addr meridian.Address, delta *big.Int) *big.Int

	// Transfer moves value from one account to another. It is composed of
	// two AddBalance calls and is NOT atomic: the debit lands before the
	// credit. The caller must have validated the value as available.
	Transfer(from, to meridian.Address, value *big.Int)

	// GetContractDetails returns the code/storage details of the account,
	// nil if the account is absent.
	GetContractDetails(addr meridian.Address) (*ContractDetails, error)

	// SaveCode associates code with the account, creating it if absent.
	SaveCode(addr meridian.Address, code []byte) error

	// GetCode returns the code of the account, nil if absent or codeless.
	GetCode(addr meridian.Address) ([]byte, error)

	// GetCodeHash returns the account's code hash, the empty-code hash if
	// the account is absent.
	GetCodeHash(addr meridian.Address) meridian.Bytes32

	// AddStorageRow stores a word at key. A zero word deletes the key.
	AddStorageRow(addr meridian.Address, key, value meridian.Bytes32) error

	// AddStorageBytes stores raw bytes at key. An empty value deletes the key.
	AddStorageBytes(addr meridian.Address, key meridian.Bytes32, value []byte) error

	// GetStorageValue reads the word at key, zero if unset.
	GetStorageValue(addr meridian.Address, key meridian.Bytes32) (meridian.Bytes32, error)

	// GetStorageBytes reads raw bytes at key, nil if unset.
	GetStorageBytes(addr meridian.Address, key meridian.Bytes32) ([]byte, error)

	// AccountKeys returns all addresses reachable in this layer, sorted.
	AccountKeys() []meridian.Address

	// UpdateBatch overwrites accounts and contract details directly,
	// bypassing the read-modify-write path. Used by bootstrap and
	// block-application fast paths.
	UpdateBatch(accounts map[meridian.Address]*Account, details map[meridian.Address]*ContractDetails)

	// UpdateAccountState overwrites the account record.
	UpdateAccountState(addr meridian.Address, acc *Account)

	// UpdateContractDetails overwrites the contract details.
	UpdateContractDetails(addr meridian.Address, det *ContractDetails)

	// LoadAccount populates the given caches with copies of the account and
	// its details, creating fresh records for absent accounts.
	LoadAccount(addr meridian.Address, cacheAccounts map[meridian.Address]*Account, cacheDetails map[meridian.Address]*ContractDetails) error

	// StartTracking derives a child layer. Reads fall through to this layer
	// for untouched keys; writes stay in the child until Commit.
	StartTracking() Repository

	// Commit merges this layer's writes into its parent and closes the
	// layer. Further use panics. Panics on the durable layer.
	Commit()

	// Rollback discards this layer's writes and closes the layer. Further
	// use panics. Panics on the durable layer.
	Rollback()

	// Root returns the world state root committing to this layer's logical
	// content. Deterministically computed in memory, even before any flush.
	Root() meridian.Bytes32

	// Flush persists the durable layer's accumulated state to the trie
	// store and repositions the layer at the new root. Panics on a
	// tracking layer.
	Flush() error

	// FlushNoReconnect persists like Flush but leaves the layer positioned
	// at its previous root; the caller is expected to re-derive a fresh
	// view via SyncToRoot or SnapshotTo.
	FlushNoReconnect() error

	// SyncToRoot discards all layering and repositions the base view at the
	// state committed by the given root. Any root ever flushed stays valid.
	SyncToRoot(root meridian.Bytes32) error

	// SnapshotTo returns an independent view pinned to a historical root.
	SnapshotTo(root meridian.Bytes32) (Repository, error)

	// DumpState serializes the full reachable state as JSON to w, for audit
	// and debugging. Side-effecting I/O only, no state semantics.
	DumpState(w io.Writer, blockNum uint32, blockHash meridian.Bytes32, gasUsed uint64, txNumber int, txHash []byte) error
}

// layer extends Repository with the internal hooks layers need from their
// parents.
type layer interface {
	Repository

	// worldAccounts returns the merged account view of this layer. The
	// returned map is owned by the caller; the account pointers are not.
	worldAccounts() map[meridian.Address]*Account

	// releaseChild unregisters a live child layer.
	releaseChild()
}
