// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers: request
logging via slog, JSON encode/decode helpers, and CORS headers for the
Mini App frontend. Error responses always carry the models.ErrorResponse
shape so the frontend can rely on one error format.
*/
package middleware
