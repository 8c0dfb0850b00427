// Package permission contains the policy records guarding module actions.
// Records are scoped to an (actor, action) pair; Check resolves several
// coexisting records with blacklist-first precedence and fails closed
// when no record matches. LimitedUse decrements happen in the caller's
// transaction so a rejected action never burns a use.
package permission
