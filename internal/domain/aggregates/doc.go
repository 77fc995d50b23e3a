// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts describe semantic write boundaries (a recipe with its steps and
// ingredient lines, shared reference data) without persistence details.
package aggregates
