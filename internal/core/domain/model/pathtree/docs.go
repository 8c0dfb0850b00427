// Package pathtree contains the nodes of the address resolver tree.
// Nodes form an arena linked by parent ids; a node is a directory, an
// address binding or an alias redirecting to another path. Walking and
// cycle detection live in the resolver service, not here.
package pathtree
