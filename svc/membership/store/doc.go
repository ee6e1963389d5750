// Package store holds the membership.Store backends and the payment
// idempotency ledgers.
//
// Memory and File suit a single process; File keeps the whole table as one
// JSON object in any blob.Storage (local disk or S3). Mongo and Postgres keep
// one document or row per member and stream All through a cursor.
// MemoryLedger and RedisLedger remember applied payment references.
package store
