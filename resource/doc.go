// Package resource provides global budgets for memory, transfer
// concurrency, and IO bandwidth.
//
// A single Controller is shared by the gallery stores and their block
// cache so that many concurrent document transfers cannot exhaust the
// host: cached blocks are charged against the memory budget, uploads and
// downloads take a worker permit, and their byte streams are paced by the
// IO limiter.
package resource
