// Package frame gates per-frame work behind a frame-rate cap.
//
// A [Scheduler] is driven from outside: whoever owns the display refresh
// subscription calls Tick with a monotonic timestamp and does the frame's
// work only when Tick says so. Skipped ticks leave no trace.
package frame
