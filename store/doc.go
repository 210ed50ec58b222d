// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the process-wide event collection.

# Ownership Model

There is exactly one Store per process, created in main and passed by
handle to every handler. All poll state lives in its in-memory map; the
SQL database underneath is a write-through snapshot that is loaded once at
startup and updated synchronously on every mutation (create, vote,
delete). A crash between the in-memory mutation and the durable write is
an accepted, bounded loss window.

# Locking

A single store-wide mutex serializes every operation. Vote submission is
a read-modify-write (find the user's record, then edit or append), and
the lock keeps that sequence atomic against concurrent submissions for
the same user. Read operations return deep copies so callers can tally at
leisure without holding the lock.

# Errors

ErrNotFound and ErrNotOwner are sentinel values; handlers map them with
errors.Is. Validation errors from package models pass through unchanged.
Persistence failures are wrapped and returned alongside the already
applied in-memory change, never as a panic.
*/
package store
