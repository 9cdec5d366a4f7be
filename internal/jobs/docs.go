// Package jobs provides the scheduled background loops of the dispatch
// engine, built on github.com/robfig/cron/v3.
//
// Three jobs run continuously:
//
//  1. OrderAssignmentJob - every second, dispatches one pending order to the
//     best free courier.
//  2. CourierMovementJob - every second, advances all assigned couriers and
//     completes arrived deliveries.
//  3. OutboxRelayJob - every ten seconds, publishes pending outbox messages
//     to the broker in batches.
//
// Every job is wrapped with cron.SkipIfStillRunning, so a slow tick is
// skipped instead of piling up, and cron.Recover, so a panicking tick does
// not kill the scheduler.
//
// Jobs are constructed explicitly and owned by JobManager:
//
//	jobManager := jobs.NewJobManager(moveHandler, assignHandler, relayHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// StopAll waits for in-flight ticks to finish.
package jobs
