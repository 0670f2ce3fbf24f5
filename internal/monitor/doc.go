// Package monitor samples host resource metrics into a single shared
// snapshot.
//
// Five independent samplers (CPU, memory, disk, network, system-wide)
// each run on their own interval and merge only the fields they own into
// the snapshot, so an expensive collector never drags down the cadence of
// a cheap one. All merging happens under one mutex held just for the
// assignment, never for the collection call itself.
//
// # Lifecycle
//
// The snapshot does not exist until the CPU sampler produces its first
// value; until then Current returns nil and samples from the other
// collectors are dropped. Stop cancels every sampler, waits for them to
// exit, and discards the snapshot.
//
// # Failure Semantics
//
// A failed tick in one sampler logs the error and backs off for five
// seconds without affecting the other samplers. Collection is best-effort:
// there is no cadence guarantee under load.
//
// # Network Rates
//
// The network sampler is the only stateful one. It keeps the previous
// counter map across iterations and derives per-second rates from the
// delta; interfaces with no baseline are omitted for a tick and counter
// resets clamp to zero instead of producing negative rates.
package monitor
