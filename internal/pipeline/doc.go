// Package pipeline provides a framework for executing sync steps in sequence.
//
// The pipeline pattern is used to bring the local draw store up to date with
// Dhlottery in stages: probe the store, estimate the latest official round,
// plan the rounds to fetch, fetch and store them, and capture the final store
// state for reporting. Each stage is implemented as a Step that receives the
// accumulating SyncReport and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running syncs
// 4. The incremental and backfill modes share most of their stages
//
// The incremental fetch stage runs a bounded worker pool using errgroup;
// the backfill stage walks rounds sequentially because its stop condition
// depends on request order.
package pipeline
