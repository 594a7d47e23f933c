// Package universe implements the process-lifetime graph of spec §3.5:
// a single *graph.Graph instance holding the type hierarchy, the module
// registry, the error-type hierarchy used for `catch`-type matching,
// and a descriptive effect log. The interpreter owns one Universe for
// its whole run; user code only ever sees a read-only Snapshot through
// `reflect.universe()`.
package universe
