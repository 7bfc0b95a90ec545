package mqtt

import "testing"

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(4)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil drain, got %v", got)
	}
}

func TestRingBufferKeepsOrder(t *testing.T) {
	rb := newRingBuffer(4)
	pushN(rb, 0, 3)

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i, msg := range got {
		if msg.payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msg.payload[0])
		}
	}
	if rb.len() != 0 {
		t.Errorf("expected empty buffer after drain, got %d", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	rb := newRingBuffer(4)
	pushN(rb, 0, 7)

	if rb.dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", rb.dropped)
	}
	got := rb.drainAll()
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	for i, msg := range got {
		if want := byte(i + 3); msg.payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msg.payload[0])
		}
	}
	if rb.dropped != 0 || rb.overflow {
		t.Error("drain should reset overflow accounting")
	}
}

func TestRingBufferReusableAfterDrain(t *testing.T) {
	rb := newRingBuffer(3)
	pushN(rb, 0, 5)
	rb.drainAll()

	pushN(rb, 20, 22)
	got := rb.drainAll()
	if len(got) != 2 || got[0].payload[0] != 20 || got[1].payload[0] != 21 {
		t.Errorf("unexpected second cycle contents: %v", got)
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := newRingBuffer(0)
	pushN(rb, 0, 2)

	got := rb.drainAll()
	if len(got) != 1 || got[0].payload[0] != 1 {
		t.Errorf("expected only the newest message, got %v", got)
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(2)
	rb.push(bufferedMsg{topic: TopicSystem, payload: []byte(`{"x":1}`), qos: 1, retained: true})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || string(m.payload) != `{"x":1}` || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}
