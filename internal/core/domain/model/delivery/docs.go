// Package delivery contains the pending-delivery aggregate: the durable
// record the kernel keeps for every remote dispatch, keyed by (channel,
// sequence) and advanced exactly once by the first acknowledgement or
// timeout that matches its key. Finalized records are retained for audit.
package delivery
