// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Build the wrapper once with the IP hashing salt and apply it per route:

	logged := middleware.WithLogging(cfg.IPHashSalt)
	mux.HandleFunc("POST /ballots", logged(h.Create))

Each request gets a uuid, returned in X-Request-ID and available to
handlers through RequestID(r.Context()). Start and completion are logged
with the method, path, status, duration and a salted hash of the client IP.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST, DELETE and OPTIONS with the Content-Type, X-Caller and
X-Caller-Token headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusConflict, "BALLOT_CLOSED", "ballot is closed")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
