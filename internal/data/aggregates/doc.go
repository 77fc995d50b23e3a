// Package aggregates implements the recipe aggregate and reference-data
// contracts on top of the table repos in internal/data/repos.
//
// Every write owns exactly one transaction. Reads run inside a snapshot
// transaction so a concurrent writer is never observed half-applied.
package aggregates
