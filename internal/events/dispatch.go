package events

// Listener receives a fired Event.
type Listener func(Event)

// subscription is a (name, listener) pair indexed by an opaque handle so
// RemoveListener works even though Go funcs aren't comparable.
type subscription struct {
	id   int
	name Name
	any  bool
	fn   Listener
}

// Dispatcher is an embeddable event-target: {addListener, fire,
// removeListener}. Embed it (rather than subclassing, which Go doesn't
// have anyway) to give a type the capability.
type Dispatcher struct {
	subs   []subscription
	nextID int
}

// AddListener registers fn for events named name and returns a handle for
// RemoveListener.
func (d *Dispatcher) AddListener(name Name, fn Listener) int {
	d.nextID++
	d.subs = append(d.subs, subscription{id: d.nextID, name: name, fn: fn})
	return d.nextID
}

// AddAnyListener registers fn for every event, regardless of name.
func (d *Dispatcher) AddAnyListener(fn Listener) int {
	d.nextID++
	d.subs = append(d.subs, subscription{id: d.nextID, any: true, fn: fn})
	return d.nextID
}

// RemoveListener unregisters the subscription created by the given handle.
func (d *Dispatcher) RemoveListener(id int) {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// Fire synchronously invokes every listener registered for e.Name and every
// any-listener, all together in registration order.
func (d *Dispatcher) Fire(e Event) {
	for _, s := range d.subs {
		if s.any || s.name == e.Name {
			s.fn(e)
		}
	}
}
