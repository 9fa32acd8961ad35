// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/meridianchain/meridian/meridian"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name       string          `json:"name"`
	LaunchTime uint64          `json:"launchTime"`
	GasLimit   uint64          `json:"gaslimit"`
	Coinbase   string          `json:"coinbase"`
	ExtraData  string          `json:"extraData"`
	Accounts   []CustomAccount `json:"accounts"`
}

// CustomAccount is the account will set to the genesis block
type CustomAccount struct {
	Address     meridian.Address            `json:"address"`
	Balance     *HexOrDecimal256            `json:"balance"`
	Nonce       uint64                      `json:"nonce"`
	Code        string                      `json:"code"`
	Storage     map[string]meridian.Bytes32 `json:"storage"`
	StorageRoot *meridian.Bytes32           `json:"storageRoot"`
	CodeHash    *meridian.Bytes32           `json:"codeHash"`
}

// NewCustomNet builds a genesis from a user customized description.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	g := &Genesis{
		launchTime: gen.LaunchTime,
		gasLimit:   gen.GasLimit,
		extraData:  []byte(gen.ExtraData),
		name:       gen.Name,
	}
	if g.gasLimit == 0 {
		g.gasLimit = meridian.InitialGasLimit
	}
	if g.name == "" {
		g.name = "customnet"
	}
	if gen.Coinbase != "" {
		coinbase, err := meridian.ParseAddress(gen.Coinbase)
		if err != nil {
			return nil, errors.Wrap(err, "parse coinbase")
		}
		g.coinbase = coinbase
	}

	for _, ca := range gen.Accounts {
		alloc := Account{
			Address:     ca.Address,
			Nonce:       ca.Nonce,
			StorageRoot: ca.StorageRoot,
			CodeHash:    ca.CodeHash,
		}
		if ca.Balance != nil {
			alloc.Balance = (*big.Int)(ca.Balance)
			if alloc.Balance.Sign() < 0 {
				return nil, fmt.Errorf("%v: balance must be a non-negative integer", ca.Address)
			}
		}
		if ca.Code != "" {
			code, err := hex.DecodeString(strings.TrimPrefix(ca.Code, "0x"))
			if err != nil {
				return nil, fmt.Errorf("%v: invalid contract code", ca.Address)
			}
			alloc.Code = code
		}
		if len(ca.Storage) > 0 {
			alloc.Storage = make(map[meridian.Bytes32]meridian.Bytes32, len(ca.Storage))
			for k, v := range ca.Storage {
				key, err := meridian.ParseBytes32(k)
				if err != nil {
					return nil, fmt.Errorf("%v: invalid storage key %q", ca.Address, k)
				}
				alloc.Storage[key] = v
			}
		}
		g.accounts = append(g.accounts, alloc)
	}
	return g, nil
}

// ReadCustomNet decodes a JSON genesis description from r.
func ReadCustomNet(r io.Reader) (*Genesis, error) {
	var gen CustomGenesis
	if err := json.NewDecoder(r).Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return NewCustomNet(&gen)
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
