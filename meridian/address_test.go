// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meridian

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addrStr := "0xabcdef0123456789abcdef0123456789abcdef01"
	addr, err := ParseAddress(addrStr)
	assert.Nil(t, err)
	assert.Equal(t, addrStr, addr.String())

	// without prefix
	addr2, err := ParseAddress(addrStr[2:])
	assert.Nil(t, err)
	assert.Equal(t, addr, addr2)

	_, err = ParseAddress("0x123")
	assert.Error(t, err)

	_, err = ParseAddress("1x" + addrStr[2:])
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("account1"))
	data, err := json.Marshal(&addr)
	assert.Nil(t, err)

	var decoded Address
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytesToAddress(t *testing.T) {
	assert.Equal(t, Address{19: 1}, BytesToAddress([]byte{0, 0, 0, 1}))
	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte{1}).IsZero())
}
