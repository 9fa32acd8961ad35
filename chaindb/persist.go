// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chaindb

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meridianchain/meridian/kv"
)

const (
	blockBucket = "chain.block" // block hash -> rlp(block)
	infoBucket  = "chain.info"  // block hash -> rlp(blockInfo)
	propBucket  = "chain.props" // property-named entries such as best block
)

var bestBlockKey = []byte("best-block-hash")

func saveRLP(w kv.Putter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val interface{}) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}
