package wavecx

// eventQueue is a FIFO of events deferred while a session fetch is in flight.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

func (q *eventQueue) len() int {
	return len(q.events)
}
