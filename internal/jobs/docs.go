// Package jobs provides scheduled background tasks for the messaging kernel.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the transport.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to push queued envelopes to the transport endpoint
// 2. DeliveryTimeoutJob - Runs every second to expire deliveries whose acknowledgement deadline passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, timeoutHandler, outbox, transport, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" which means they run every
// second. The relay keeps outbound latency low; the sweep keeps escrow refunds
// close to the deadline.
//
// # Error Handling
//
//   - The relay stops a batch at the first failed push and retries next tick,
//     preserving per-channel ordering
//   - The sweep logs per-record failures and continues; records finalized by a
//     concurrent external timeout are skipped
//   - Failed job starts will stop any already running jobs
package jobs
