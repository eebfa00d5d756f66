// Package metrics defines interfaces and data types for recording solver
// activity. Sinks like PromSink and InfluxSink persist solve results,
// machine usage snapshots and benchmark summaries, and can be combined with
// NewMultiSink. The factory helpers return a MultiSink automatically when
// multiple sinks are configured.
package metrics
