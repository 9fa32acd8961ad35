// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/meridianchain/meridian/metrics"

var (
	metricFlushCount    = metrics.LazyLoadCounter("chain_flush_count")
	metricFlushDuration = metrics.LazyLoadGauge("chain_flush_duration_ms")
)
