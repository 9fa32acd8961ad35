// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/pkg/errors"

// Config carries the chain bootstrap knobs.
type Config struct {
	// FlushEnabled controls whether connected blocks ever reach disk.
	// Disabling it is only useful for throwaway test chains.
	FlushEnabled bool

	// FlushCadence is the number of blocks between flushes. The first
	// observed block always flushes, then every FlushCadence-th after it.
	FlushCadence uint32

	// RootHashOverride optionally forces the world state to a specific
	// root at startup, as a hex string. Empty means unset.
	RootHashOverride string

	// InitialNonce is the nonce given to premine accounts that don't
	// declare one.
	InitialNonce uint64
}

// DefaultConfig is a sensible starting point for a node.
var DefaultConfig = Config{
	FlushEnabled: true,
	FlushCadence: 1,
}

func (c *Config) validate() error {
	if c.FlushCadence < 1 {
		return errors.New("flush cadence must be a positive integer")
	}
	return nil
}
