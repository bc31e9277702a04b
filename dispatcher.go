package wavecx

// dispatcher holds the single pending "content dismissed" callback.
// Callers synchronize access.
type dispatcher struct {
	fn func()
}

// set overwrites the slot; nil clears it.
func (d *dispatcher) set(fn func()) {
	d.fn = fn
}

// take empties the slot and returns what it held. The caller invokes it
// outside its lock, which makes firing at-most-once.
func (d *dispatcher) take() func() {
	fn := d.fn
	d.fn = nil
	return fn
}
