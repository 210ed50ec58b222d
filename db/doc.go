// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the durable snapshot schema.

The database is not the read path: the store keeps every event in memory
and only writes through to the event table so state survives restarts.
Each row holds one event as a JSON payload; owner_id and created_at are
denormalized for inspection with a plain SQL client.

The schema works unchanged on both SQLite (modernc.org/sqlite) and
PostgreSQL (lib/pq); statements stick to the $1 placeholder form, which
both drivers accept.

  - event.id (primary key, the poll UUID)
  - event.owner_id (indexed)
*/
package db
