// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package listener provides the notification surface of the chain: components
// interested in connected blocks register here and get called back in
// registration order.
package listener

import (
	"sync"

	"github.com/meridianchain/meridian/block"
	"github.com/meridianchain/meridian/tx"
)

// BlockListener observes blocks as they connect to the chain.
// Callbacks run synchronously on the connecting goroutine; a slow listener
// slows down block import.
type BlockListener interface {
	OnBlock(blk *block.Block, receipts tx.Receipts)
}

// Composite fans one OnBlock out to many listeners.
//
// It's thread-safe.
type Composite struct {
	mu        sync.Mutex
	listeners []BlockListener
}

var _ BlockListener = (*Composite)(nil)

// Add registers a listener. Listeners are notified in registration order.
func (c *Composite) Add(l BlockListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// OnBlock dispatches to every registered listener.
func (c *Composite) OnBlock(blk *block.Block, receipts tx.Receipts) {
	c.mu.Lock()
	listeners := append([]BlockListener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.OnBlock(blk, receipts)
	}
}
