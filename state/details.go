// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/meridianchain/meridian/meridian"
	"github.com/meridianchain/meridian/triedb"
)

// ContractDetails holds the code and storage of a contract account.
// One-to-one with an Account whose code hash is non-empty.
type ContractDetails struct {
	Address meridian.Address
	Code    []byte
	Storage map[meridian.Bytes32][]byte
}

func newContractDetails(addr meridian.Address) *ContractDetails {
	return &ContractDetails{
		Address: addr,
		Storage: make(map[meridian.Bytes32][]byte),
	}
}

// SetStorage sets value for key. An empty value deletes the key, which is
// the trie-store convention for zero words.
func (d *ContractDetails) SetStorage(key meridian.Bytes32, value []byte) {
	if len(value) == 0 {
		delete(d.Storage, key)
		return
	}
	d.Storage[key] = append([]byte(nil), value...)
}

// GetStorage returns the value for key, nil if unset.
func (d *ContractDetails) GetStorage(key meridian.Bytes32) []byte {
	return d.Storage[key]
}

// StorageRoot derives the root committing to the current storage content.
func (d *ContractDetails) StorageRoot() meridian.Bytes32 {
	return triedb.HashNode(d.storagePairs())
}

// CodeHash derives the hash of the contract code.
func (d *ContractDetails) CodeHash() meridian.Bytes32 {
	if len(d.Code) == 0 {
		return meridian.EmptyCodeHash
	}
	return triedb.HashBlob(d.Code)
}

func (d *ContractDetails) storagePairs() []triedb.Pair {
	pairs := make([]triedb.Pair, 0, len(d.Storage))
	for key, value := range d.Storage {
		k := make([]byte, len(key))
		copy(k, key[:])
		pairs = append(pairs, triedb.Pair{Key: k, Value: value})
	}
	return pairs
}

// Copy makes a deep copy of the details.
func (d *ContractDetails) Copy() *ContractDetails {
	cpy := &ContractDetails{
		Address: d.Address,
		Code:    append([]byte(nil), d.Code...),
		Storage: make(map[meridian.Bytes32][]byte, len(d.Storage)),
	}
	if len(cpy.Code) == 0 {
		cpy.Code = nil
	}
	for key, value := range d.Storage {
		cpy.Storage[key] = append([]byte(nil), value...)
	}
	return cpy
}

// trimWord strips leading zero bytes of a storage word, producing the
// canonical stored form.
func trimWord(word meridian.Bytes32) []byte {
	return bytes.TrimLeft(word[:], "\x00")
}
