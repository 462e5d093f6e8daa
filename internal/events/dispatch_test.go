package events

import "testing"

func TestFireInvokesOnlyMatchingListeners(t *testing.T) {
	var d Dispatcher
	var gotStart, gotEnd int

	d.AddListener(StartRule, func(e Event) { gotStart++ })
	d.AddListener(EndRule, func(e Event) { gotEnd++ })

	d.Fire(Event{Name: StartRule})
	d.Fire(Event{Name: StartRule})
	d.Fire(Event{Name: EndRule})

	if gotStart != 2 || gotEnd != 1 {
		t.Fatalf("gotStart=%d gotEnd=%d, want 2 and 1", gotStart, gotEnd)
	}
}

func TestAnyListenerSeesEverything(t *testing.T) {
	var d Dispatcher
	var names []Name

	d.AddAnyListener(func(e Event) { names = append(names, e.Name) })
	d.Fire(Event{Name: StartStyleSheet})
	d.Fire(Event{Name: Charset})
	d.Fire(Event{Name: EndStyleSheet})

	if len(names) != 3 {
		t.Fatalf("expected 3 events observed, got %d", len(names))
	}
}

func TestRemoveListenerStopsDelivery(t *testing.T) {
	var d Dispatcher
	calls := 0
	id := d.AddListener(Error, func(e Event) { calls++ })

	d.Fire(Event{Name: Error})
	d.RemoveListener(id)
	d.Fire(Event{Name: Error})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
