// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the ballot ledger API.

	ledger := handlers.Ledger{Registry: reg, Store: store, Metrics: rec}
	mux := router.NewRouter(ledger, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

Ledger routes are wrapped with middleware.WithLogging. GET /health and
GET /metrics are not logged; /metrics is only registered when metrics are
enabled and a recorder is present. See package handlers for the route list.
*/
package router
