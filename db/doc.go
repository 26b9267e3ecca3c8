// Package db provides stateless database tools: one-shot SQLite and
// PostgreSQL queries and a whitelisted set of Redis commands.
//
// Every call opens its own connection from the address, DSN or file path
// it is given and closes it before returning. Nothing is pooled across
// calls; an agent that needs ten queries pays for ten connections. That
// keeps the tools free of lifecycle state, at the cost of throughput
// these tools are not meant for.
//
// Queries are read-only unless the caller sets allow_write. The write
// gate is a statement-prefix check, not a SQL parser; it is there to stop
// accidents, not adversaries.
package db
