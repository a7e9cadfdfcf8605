package cli

import (
	"testing"

	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/stretchr/testify/assert"
)

func TestProgressView_SpinnerLifecycle(t *testing.T) {
	out := &syncBuffer{}
	view := NewProgressView(out, false)

	view.Update(flow.Screen{LoadingVisible: true, Status: "Finding best Wall art..."})
	assert.True(t, view.Active())

	view.Update(flow.Screen{LoadingVisible: true, Status: "AI is attaching best artwork to your wall..."})
	assert.True(t, view.Active())

	view.Update(flow.Screen{ResultsVisible: true})
	assert.False(t, view.Active())
}

func TestProgressView_AlertStopsSpinner(t *testing.T) {
	out := &syncBuffer{}
	view := NewProgressView(out, false)

	view.Update(flow.Screen{LoadingVisible: true, Status: "Finding best Wall art..."})
	view.Alert("Cannot connect to server. Is the backend running?")

	assert.False(t, view.Active())
	assert.Contains(t, out.String(), "Cannot connect to server. Is the backend running?")
}

func TestProgressView_Quiet(t *testing.T) {
	out := &syncBuffer{}
	view := NewProgressView(out, true)

	view.Update(flow.Screen{LoadingVisible: true, Status: "Finding best Wall art..."})
	assert.False(t, view.Active())
	assert.Empty(t, out.String())
}
