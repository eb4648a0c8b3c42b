// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes ledger counters in the Prometheus format.

	rec := metrics.NewRecorder()
	rec.Observe("vote", err)
	mux.Handle("GET /metrics", rec.Handler())

Counters:

  - ballot_operations_total{operation, code}: code is the ledger error code,
    OK on success, or INTERNAL for errors outside the ledger
  - ballot_ballots_created_total

Each Recorder owns its registry, so tests can build as many as they like.
Methods on a nil *Recorder are no-ops, which is how metrics are disabled.
*/
package metrics
