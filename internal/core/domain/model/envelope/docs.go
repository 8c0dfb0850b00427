// Package envelope defines the structured message passed between modules.
// An envelope names its origin, its symbolic destination, the opaque payload
// and any attached funds, and carries a hop count bounding forwarding depth.
package envelope
