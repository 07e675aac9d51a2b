package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeEvent(t *testing.T) {
	line := MakeEvent("req-1", TypeSearchStarted, SearchStarted{Keywords: "go", Sources: []string{"adzuna"}})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(line), &e))
	assert.Equal(t, TypeSearchStarted, e.Type)
	assert.Equal(t, Version, e.Version)
	assert.Equal(t, "req-1", e.RequestID)
	assert.False(t, e.At.IsZero())
	assert.JSONEq(t, `{"keywords":"go","sources":["adzuna"]}`, string(e.Data))

	assert.NotContains(t, MakeEvent("", TypeSearchDone, nil), `"data"`)
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelB()
	assert.Equal(t, 2, h.Subscribers())

	h.Emit("r", TypeSourceDone, map[string]string{"source": "jooble"})
	assert.Contains(t, <-a, `"source_done"`)
	assert.Contains(t, <-b, `"jooble"`)

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()
	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish("x")
	}
	assert.Len(t, ch, subscriberBuffer)

	var nilHub *Hub
	assert.NotPanics(t, func() { nilHub.Emit("", TypeSearchDone, nil) })
}
