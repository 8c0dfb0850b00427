// Package economics contains the per-actor balance ledger backing escrow
// accounting. All balance movement goes through checked Credit/Debit, so
// escrowed funds are released or refunded exactly once and never stranded.
package economics
