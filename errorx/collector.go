package errorx

// Collector is the module-scoped buffer of errors suppressed under the
// :collect error mode (spec §4.7). It is owned by the executor, not a
// package-level global, so multiple interpreters never share state.
type Collector struct {
	errs []*Error
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Add appends err to the collector. Nil errors are ignored.
func (c *Collector) Add(err *Error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}

// Errors returns the collected errors in the order they were added. The
// returned slice is a copy; mutating it does not affect the collector.
func (c *Collector) Errors() []*Error {
	out := make([]*Error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Clear empties the collector.
func (c *Collector) Clear() { c.errs = c.errs[:0] }

// Len reports how many errors are currently collected.
func (c *Collector) Len() int { return len(c.errs) }
