package flow

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/encoder"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/render"
	"github.com/Veraticus/wallmatch/internal/selection"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeView struct {
	screens []Screen
	alerts  []string
	mu      sync.Mutex
}

func (v *fakeView) Update(s Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screens = append(v.screens, s)
}

func (v *fakeView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *fakeView) Alerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.alerts...)
}

func (v *fakeView) Screens() []Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Screen(nil), v.screens...)
}

type fakeMatcher struct {
	err      error
	release  chan struct{}
	started  chan struct{}
	requests []model.MatchRequest
	resp     model.MatchResponse
	mu       sync.Mutex
}

func (m *fakeMatcher) Match(ctx context.Context, req model.MatchRequest) (model.MatchResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return model.MatchResponse{}, &common.TransportError{Err: ctx.Err()}
		}
	}
	return m.resp, m.err
}

func (m *fakeMatcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

type harness struct {
	fs      afero.Fs
	view    *fakeView
	matcher *fakeMatcher
	store   *selection.Store
	ctrl    *Controller
}

func newHarness(t *testing.T, policy selection.Cardinality, opts Options) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/walls/living-room.png", pngHeader, 0o600))

	h := &harness{
		fs:      fs,
		view:    &fakeView{},
		matcher: &fakeMatcher{resp: model.MatchResponse{Success: true}},
		store:   selection.NewStore(policy),
	}
	if opts.Fs == nil {
		opts.Fs = fs
	}
	h.ctrl = New(h.store, encoder.New(fs), h.matcher, h.view, opts)
	return h
}

func (h *harness) fillForm(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctrl.SelectFile("/walls/living-room.png"))
	h.ctrl.Toggle(model.FacetCategory, "a")
	h.ctrl.Toggle(model.FacetCategory, "b")
	h.ctrl.Toggle(model.FacetColor, "red")
}

func TestController_InitialScreen(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})

	s := h.ctrl.Screen()
	assert.Equal(t, StateIdle, s.State)
	assert.True(t, s.FormVisible)
	assert.True(t, s.SubmitEnabled)
	assert.True(t, s.PlaceholderVisible())
	assert.False(t, s.LoadingVisible)
	assert.False(t, s.ResultsVisible)
	assert.Equal(t, LabelSubmit, s.SubmitLabel)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Colors)
}

func TestController_SelectFileShowsPreview(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})

	require.NoError(t, h.ctrl.SelectFile("/walls/living-room.png"))
	s := h.ctrl.Screen()
	require.NotNil(t, s.Preview)
	assert.False(t, s.PlaceholderVisible())
	assert.Equal(t, "living-room.png", s.Preview.Name)
	assert.Equal(t, "image/png", s.Preview.MIME)

	err := h.ctrl.SelectFile("/walls/missing.png")
	require.Error(t, err)
	assert.True(t, h.ctrl.Screen().PlaceholderVisible())
	assert.Equal(t, []string{"Cannot read missing.png"}, h.view.Alerts())
}

func TestController_ValidationAlerts(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *Controller) error
		wantErr error
		alert   string
	}{
		{
			name:    "no image",
			setup:   func(_ *Controller) error { return nil },
			wantErr: common.ErrMissingImage,
			alert:   "Please upload a wall image",
		},
		{
			name:    "no category",
			setup:   func(c *Controller) error { return c.SelectFile("/walls/living-room.png") },
			wantErr: common.ErrMissingCategory,
			alert:   "Please select at least one category",
		},
		{
			name: "no color",
			setup: func(c *Controller) error {
				c.Toggle(model.FacetCategory, "classical")
				return c.SelectFile("/walls/living-room.png")
			},
			wantErr: common.ErrMissingColor,
			alert:   "Please select at least one color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, selection.OneOrMore, Options{})
			require.NoError(t, tt.setup(h.ctrl))

			err := h.ctrl.Submit(context.Background())
			require.ErrorIs(t, err, tt.wantErr)

			var validationErr *common.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, []string{tt.alert}, h.view.Alerts())
			assert.Equal(t, 0, h.matcher.Calls())
			assert.Equal(t, StateIdle, h.ctrl.State())
		})
	}
}

func TestController_SubmitSendsOneRequest(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	h.matcher.resp = model.MatchResponse{
		Success:        true,
		Artworks:       []model.Artwork{{Title: "Sunrise", Price: "120"}},
		CompositeImage: base64.StdEncoding.EncodeToString(pngHeader),
	}
	h.fillForm(t)

	require.NoError(t, h.ctrl.Submit(context.Background()))
	require.Equal(t, 1, h.matcher.Calls())

	req := h.matcher.requests[0]
	assert.Equal(t, []string{"a", "b"}, req.Categories)
	assert.Equal(t, []string{"red"}, req.Colors)
	assert.InDelta(t, model.DefaultBudget, req.Budget, 0)
	assert.Equal(t, model.ModeMulti, req.Mode)
	assert.Equal(t, encoder.DataURL("image/png", pngHeader), req.WallImage)

	s := h.ctrl.Screen()
	assert.Equal(t, StateRendering, s.State)
	assert.True(t, s.ResultsVisible)
	assert.False(t, s.FormVisible)
	assert.False(t, s.LoadingVisible)
	assert.False(t, s.SubmitEnabled)
	assert.Equal(t, LabelDone, s.SubmitLabel)
	require.Len(t, s.Results, 4)
	assert.IsType(t, render.Heading{}, s.Results[0])

	resp, ok := h.ctrl.Response()
	require.True(t, ok)
	assert.Len(t, resp.Artworks, 1)

	err := h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrSubmissionInFlight)
	assert.Equal(t, 1, h.matcher.Calls())
}

func TestController_SingleSelectRequest(t *testing.T) {
	h := newHarness(t, selection.ExactlyOne, Options{})
	require.NoError(t, h.ctrl.SelectFile("/walls/living-room.png"))
	h.ctrl.Toggle(model.FacetCategory, "classical")
	h.ctrl.Toggle(model.FacetCategory, "aesthetic")
	h.ctrl.Toggle(model.FacetColor, "Blue")

	require.NoError(t, h.ctrl.Submit(context.Background()))
	req := h.matcher.requests[0]
	assert.Equal(t, model.ModeSingle, req.Mode)
	assert.Equal(t, []string{"aesthetic"}, req.Categories)
	assert.Equal(t, []string{"Blue"}, req.Colors)
}

func TestController_LoadingScreens(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	h.fillForm(t)
	before := len(h.view.Screens())

	require.NoError(t, h.ctrl.Submit(context.Background()))

	screens := h.view.Screens()[before:]
	require.GreaterOrEqual(t, len(screens), 3)

	encoding := screens[0]
	assert.Equal(t, StateEncoding, encoding.State)
	assert.True(t, encoding.LoadingVisible)
	assert.False(t, encoding.FormVisible)
	assert.False(t, encoding.SubmitEnabled)
	assert.Equal(t, LabelProcessing, encoding.SubmitLabel)
	assert.Equal(t, "Finding best Wall art...", encoding.Status)

	assert.Equal(t, StateRequesting, screens[1].State)
	assert.Equal(t, StateRendering, screens[len(screens)-1].State)
}

func TestController_SizeLimitStopsBeforeRequest(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{MaxEncodedBytes: 16})
	h.fillForm(t)

	err := h.ctrl.Submit(context.Background())

	var sizeErr *common.SizeLimitError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, int64(16), sizeErr.Limit)
	assert.Equal(t, 0, h.matcher.Calls())
	require.Len(t, h.view.Alerts(), 1)
	assert.Contains(t, h.view.Alerts()[0], "Image is too large")

	s := h.ctrl.Screen()
	assert.Equal(t, StateIdle, s.State)
	assert.True(t, s.FormVisible)
	assert.Equal(t, []string{"a", "b"}, s.Categories)
}

func TestController_APIErrorKeepsSelections(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	h.matcher.err = &common.APIError{StatusCode: http.StatusInternalServerError, Body: "server error"}
	h.fillForm(t)

	err := h.ctrl.Submit(context.Background())

	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"Failed to load artworks. API error: 500 - server error"}, h.view.Alerts())

	s := h.ctrl.Screen()
	assert.Equal(t, StateIdle, s.State)
	assert.True(t, s.FormVisible)
	assert.True(t, s.SubmitEnabled)
	assert.Equal(t, LabelSubmit, s.SubmitLabel)
	assert.Equal(t, []string{"a", "b"}, s.Categories)
	assert.Equal(t, []string{"red"}, s.Colors)
	assert.Equal(t, "a,b", s.CategoryMirror)
	assert.NotNil(t, s.Preview)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		name string
		kind ErrorKind
		msg  string
	}{
		{
			name: "timeout",
			err:  &common.TransportError{Err: context.DeadlineExceeded},
			kind: KindTimeout,
			msg:  MsgTimeout,
		},
		{
			name: "cancelled request",
			err:  &common.TransportError{Err: fmt.Errorf("Post: %w", context.Canceled)},
			kind: KindCancelled,
			msg:  MsgTimeout,
		},
		{
			name: "cancelled before encoding",
			err:  context.Canceled,
			kind: KindCancelled,
			msg:  MsgTimeout,
		},
		{
			name: "connectivity",
			err:  &common.TransportError{Err: errors.New("connection refused")},
			kind: KindConnectivity,
			msg:  MsgConnectivity,
		},
		{
			name: "size",
			err:  &common.SizeLimitError{Size: 20 * 1024 * 1024, Limit: 10 * 1024 * 1024},
			kind: KindSize,
			msg:  "Image is too large (20.00 MB encoded, limit 10.00 MB). Please use a smaller image.",
		},
		{
			name: "parse",
			err:  &common.ParseError{Err: errors.New("unexpected EOF")},
			kind: KindGeneric,
			msg:  "Failed to load artworks. failed to parse response: unexpected EOF",
		},
		{
			name: "validation",
			err:  &common.ValidationError{Err: common.ErrMissingColor},
			kind: KindValidation,
			msg:  "Please select at least one color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, msg := Classify(tt.err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestController_StatusRotation(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{StatusInterval: 5 * time.Millisecond})
	h.matcher.release = make(chan struct{})
	h.matcher.started = make(chan struct{})
	h.fillForm(t)

	errCh := make(chan error, 1)
	go func() { errCh <- h.ctrl.Submit(context.Background()) }()

	<-h.matcher.started
	assert.Eventually(t, func() bool {
		seen := map[string]bool{}
		for _, s := range h.view.Screens() {
			if s.State == StateRequesting {
				seen[s.Status] = true
			}
		}
		return seen["Finding best Wall art..."] && seen["AI is attaching best artwork to your wall..."]
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, h.ctrl.Submit(context.Background()), common.ErrSubmissionInFlight)
	assert.ErrorIs(t, h.ctrl.Reset(), common.ErrSubmissionInFlight)

	close(h.matcher.release)
	require.NoError(t, <-errCh)

	settled := len(h.view.Screens())
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, h.view.Screens(), settled, "no updates after the request settles")
	assert.Equal(t, 1, h.matcher.Calls())
}

func TestController_CancelledRequestRecovers(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	h.matcher.release = make(chan struct{})
	h.fillForm(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := h.ctrl.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{MsgTimeout}, h.view.Alerts())
	assert.Equal(t, StateIdle, h.ctrl.State())
}

func TestController_InterruptedSubmitShowsTimeoutMessage(t *testing.T) {
	t.Run("during request", func(t *testing.T) {
		h := newHarness(t, selection.OneOrMore, Options{})
		h.matcher.release = make(chan struct{})
		h.matcher.started = make(chan struct{})
		h.fillForm(t)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- h.ctrl.Submit(ctx) }()

		<-h.matcher.started
		cancel()

		err := <-errCh
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{MsgTimeout}, h.view.Alerts())
		assert.NotContains(t, h.view.Alerts(), MsgConnectivity)
		assert.Equal(t, StateIdle, h.ctrl.State())
	})

	t.Run("before encoding", func(t *testing.T) {
		h := newHarness(t, selection.OneOrMore, Options{})
		h.fillForm(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := h.ctrl.Submit(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{MsgTimeout}, h.view.Alerts())
		assert.Equal(t, 0, h.matcher.Calls())
	})
}

func TestController_ResetRestoresInitialScreen(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	initial := h.ctrl.Screen()
	h.fillForm(t)
	require.NoError(t, h.ctrl.Submit(context.Background()))

	s := h.ctrl.Screen()
	reset, ok := s.Results[len(s.Results)-1].(render.ResetButton)
	require.True(t, ok)
	assert.Equal(t, render.ResetLabel, reset.Label)

	reset.Activate()

	assert.Equal(t, initial, h.ctrl.Screen())
	assert.True(t, h.store.Empty())
	_, ok = h.ctrl.Response()
	assert.False(t, ok)
}

func TestController_ToggleIgnoredWhileShowingResults(t *testing.T) {
	h := newHarness(t, selection.OneOrMore, Options{})
	h.fillForm(t)
	require.NoError(t, h.ctrl.Submit(context.Background()))

	h.ctrl.Toggle(model.FacetColor, "Blue")
	assert.Equal(t, []string{"red"}, h.ctrl.Screen().Colors)
}

func TestController_SaveComposite(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	h := newHarness(t, selection.OneOrMore, Options{Now: func() time.Time { return now }})

	_, err := h.ctrl.SaveComposite("/out")
	require.ErrorIs(t, err, common.ErrNoComposite)

	h.matcher.resp = model.MatchResponse{
		Success:        true,
		CompositeImage: base64.StdEncoding.EncodeToString(pngHeader),
	}
	h.fillForm(t)
	require.NoError(t, h.ctrl.Submit(context.Background()))

	path, err := h.ctrl.SaveComposite("/out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "wallmatch-preview-1700000000123.png"), path)

	data, err := afero.ReadFile(h.fs, path)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "requesting", StateRequesting.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, StateEncoding.Busy())
	assert.False(t, StateRendering.Busy())
}
