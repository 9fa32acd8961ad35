// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/meridianchain/meridian/meridian"
)

// DumpAccount is the JSON form of a single account in a world-state dump.
type DumpAccount struct {
	Balance  string            `json:"balance"`
	Nonce    uint64            `json:"nonce"`
	Root     string            `json:"root"`
	CodeHash string            `json:"codeHash"`
	Code     string            `json:"code,omitempty"`
	Storage  map[string]string `json:"storage,omitempty"`
}

// Dump is the JSON form of a full world-state dump, stamped with the
// block context it was taken at.
type Dump struct {
	BlockNumber uint32                 `json:"blockNumber"`
	BlockHash   string                 `json:"blockHash"`
	GasUsed     uint64                 `json:"gasUsed"`
	TxNumber    int                    `json:"txNumber"`
	TxHash      string                 `json:"txHash,omitempty"`
	Root        string                 `json:"root"`
	Accounts    map[string]DumpAccount `json:"accounts"`
}

func dumpState(r Repository, w io.Writer, blockNum uint32, blockHash meridian.Bytes32, gasUsed uint64, txNumber int, txHash []byte) error {
	dump := Dump{
		BlockNumber: blockNum,
		BlockHash:   blockHash.String(),
		GasUsed:     gasUsed,
		TxNumber:    txNumber,
		Root:        r.Root().String(),
		Accounts:    make(map[string]DumpAccount),
	}
	if len(txHash) > 0 {
		dump.TxHash = "0x" + hex.EncodeToString(txHash)
	}

	for _, addr := range r.AccountKeys() {
		acc := r.GetAccountState(addr)
		if acc == nil {
			continue
		}
		da := DumpAccount{
			Balance:  acc.Balance.String(),
			Nonce:    acc.Nonce,
			Root:     acc.StorageRoot.String(),
			CodeHash: acc.CodeHash.String(),
		}
		det, err := r.GetContractDetails(addr)
		if err != nil {
			return err
		}
		if det != nil {
			if len(det.Code) > 0 {
				da.Code = "0x" + hex.EncodeToString(det.Code)
			}
			if len(det.Storage) > 0 {
				da.Storage = make(map[string]string, len(det.Storage))
				for k, v := range det.Storage {
					da.Storage[k.String()] = "0x" + hex.EncodeToString(v)
				}
			}
		}
		dump.Accounts[addr.String()] = da
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&dump)
}
