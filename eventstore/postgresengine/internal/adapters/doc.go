// Package adapters lets the Postgres engine run on pgxpool.Pool, sql.DB (lib/pq) or sqlx.DB
// through one small DBAdapter interface.
//
// Each adapter optionally holds a replica connection which serves queries whose context
// asks for eventual consistency.
package adapters
