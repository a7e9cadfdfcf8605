package flow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/config"
	"github.com/Veraticus/wallmatch/internal/encoder"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/render"
	"github.com/Veraticus/wallmatch/internal/selection"
	"github.com/spf13/afero"
)

// Encoder turns a chosen file into a data URL.
type Encoder interface {
	Encode(ctx context.Context, path string) (string, error)
	Inspect(path string) (encoder.Preview, error)
}

// Matcher sends a match request to the backend.
type Matcher interface {
	Match(ctx context.Context, req model.MatchRequest) (model.MatchResponse, error)
}

// Options tune a Controller.
type Options struct {
	Fs              afero.Fs
	Now             func() time.Time
	StatusMessages  []string
	StatusInterval  time.Duration
	Budget          float64
	MaxEncodedBytes int64
}

// OptionsFrom builds Options from resolved settings.
func OptionsFrom(s config.Settings) Options {
	return Options{
		StatusMessages:  s.StatusMessages,
		StatusInterval:  s.StatusInterval,
		Budget:          s.Budget,
		MaxEncodedBytes: s.MaxEncodedBytes,
	}
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if len(o.StatusMessages) == 0 {
		o.StatusMessages = config.DefaultStatusMessages
	}
	if o.StatusInterval <= 0 {
		o.StatusInterval = config.DefaultStatusInterval
	}
	if o.Budget <= 0 {
		o.Budget = model.DefaultBudget
	}
	if o.MaxEncodedBytes <= 0 {
		o.MaxEncodedBytes = config.DefaultMaxEncodedBytes
	}
	return o
}

// Controller runs the submit flow. All state changes are serialized by mu
// and published to the view as Screen snapshots.
type Controller struct {
	encoder  Encoder
	matcher  Matcher
	view     View
	store    *selection.Store
	renderer *render.Renderer
	preview  *encoder.Preview
	response *model.MatchResponse
	file     string
	results  render.Buffer
	opts     Options
	state    State
	status   int
	mu       sync.Mutex
}

// New creates a Controller in the Idle state.
func New(store *selection.Store, enc Encoder, matcher Matcher, view View, opts Options) *Controller {
	c := &Controller{
		encoder: enc,
		matcher: matcher,
		view:    view,
		store:   store,
		opts:    opts.withDefaults(),
		state:   StateIdle,
	}
	c.renderer = render.NewRenderer(func() {
		if err := c.Reset(); err != nil {
			slog.Debug("Reset ignored", "error", err)
		}
	})
	return c
}

// Screen returns the current snapshot.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Response returns the last rendered response, if any.
func (c *Controller) Response() (model.MatchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.response == nil {
		return model.MatchResponse{}, false
	}
	return *c.response, true
}

// Toggle changes a facet selection. It is ignored unless the form is editable.
func (c *Controller) Toggle(kind model.FacetKind, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return
	}
	c.store.Toggle(kind, value)
	c.publish()
}

// SelectFile records the wall image to submit. An empty path clears it.
func (c *Controller) SelectFile(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return common.ErrSubmissionInFlight
	}

	if path == "" {
		c.file = ""
		c.preview = nil
		c.publish()
		return nil
	}

	preview, err := c.encoder.Inspect(path)
	if err != nil {
		c.file = ""
		c.preview = nil
		c.publish()
		c.view.Alert(fmt.Sprintf("Cannot read %s", filepath.Base(path)))
		return fmt.Errorf("failed to select file: %w", err)
	}

	common.LogDebug("Selected wall image", common.Fields{"path": path, "mime": preview.MIME, "size": preview.Size})
	c.file = path
	c.preview = &preview
	c.publish()
	return nil
}

// Submit validates the form, encodes the image, calls the match API once
// and renders the response. It blocks until the call settles.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return common.ErrSubmissionInFlight
	}

	c.state = StateValidating
	if err := c.validate(); err != nil {
		c.state = StateIdle
		_, msg := Classify(err)
		c.view.Alert(msg)
		c.publish()
		c.mu.Unlock()
		return err
	}

	file := c.file
	req := model.MatchRequest{
		Mode:       c.mode(),
		Categories: c.store.Values(model.FacetCategory),
		Colors:     c.store.Values(model.FacetColor),
		Budget:     c.opts.Budget,
	}

	c.state = StateEncoding
	c.status = 0
	c.publish()
	c.mu.Unlock()

	dataURL, err := c.encoder.Encode(ctx, file)
	if err != nil {
		return c.fail(err)
	}
	if size := int64(len(dataURL)); size > c.opts.MaxEncodedBytes {
		return c.fail(&common.SizeLimitError{Size: size, Limit: c.opts.MaxEncodedBytes})
	}
	req.WallImage = dataURL

	c.mu.Lock()
	c.state = StateRequesting
	c.publish()
	c.mu.Unlock()

	resp, err := c.request(ctx, req)
	if err != nil {
		return c.fail(err)
	}

	if !resp.Success {
		slog.Warn("Match API reported failure", "error", resp.Error, "artworks", len(resp.Artworks))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateRendering
	c.response = &resp
	c.renderer.Render(resp, &c.results)
	c.publish()
	return nil
}

// request performs the API call while the status line rotates.
func (c *Controller) request(ctx context.Context, req model.MatchRequest) (model.MatchResponse, error) {
	ticker := time.NewTicker(c.opts.StatusInterval)
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c.rotateStatus()
			}
		}
	}()

	defer func() {
		ticker.Stop()
		close(done)
		wg.Wait()
	}()

	return c.matcher.Match(ctx, req)
}

func (c *Controller) rotateStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRequesting {
		return
	}
	c.status = (c.status + 1) % len(c.opts.StatusMessages)
	c.publish()
}

// fail alerts the user and restores the editable form, keeping selections.
func (c *Controller) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateErrorRecovery
	kind, msg := Classify(err)
	common.LogError(err, "Match submission failed", common.Fields{"kind": string(kind)})
	c.view.Alert(msg)

	c.state = StateIdle
	c.status = 0
	c.publish()
	return err
}

// Reset clears selections, the chosen file and results.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Busy() {
		return common.ErrSubmissionInFlight
	}

	c.store.Clear()
	c.file = ""
	c.preview = nil
	c.response = nil
	c.results.Clear()
	c.state = StateIdle
	c.status = 0
	c.publish()
	return nil
}

// SaveComposite writes the rendered composite image into dir and returns its path.
func (c *Controller) SaveComposite(dir string) (string, error) {
	c.mu.Lock()
	composite, ok := c.results.Composite()
	now := c.opts.Now()
	c.mu.Unlock()

	if !ok {
		return "", common.ErrNoComposite
	}

	mimeType, data, err := render.DecodeDataURL(composite.DataURL)
	if err != nil {
		return "", fmt.Errorf("failed to decode composite: %w", err)
	}

	if err := c.opts.Fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	name := fmt.Sprintf("wallmatch-preview-%d%s", now.UnixMilli(), render.ExtensionFor(mimeType))
	path := filepath.Join(dir, name)
	if err := afero.WriteFile(c.opts.Fs, path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write composite: %w", err)
	}

	common.LogInfo("Saved composite preview", common.Fields{"path": path, "bytes": len(data)})
	return path, nil
}

func (c *Controller) validate() error {
	if c.file == "" {
		return &common.ValidationError{Err: common.ErrMissingImage}
	}
	if !c.store.Satisfied(model.FacetCategory) {
		return &common.ValidationError{Err: common.ErrMissingCategory}
	}
	if !c.store.Satisfied(model.FacetColor) {
		return &common.ValidationError{Err: common.ErrMissingColor}
	}
	return nil
}

func (c *Controller) mode() model.SelectionMode {
	if c.store.Policy() == selection.ExactlyOne {
		return model.ModeSingle
	}
	return model.ModeMulti
}

// snapshot builds the Screen for the current state. Callers hold mu.
func (c *Controller) snapshot() Screen {
	s := Screen{
		State:          c.state,
		File:           c.file,
		Preview:        c.preview,
		Categories:     c.store.Values(model.FacetCategory),
		Colors:         c.store.Values(model.FacetColor),
		CategoryMirror: c.store.Mirror(model.FacetCategory),
		ColorMirror:    c.store.Mirror(model.FacetColor),
	}

	switch {
	case c.state == StateRendering:
		s.ResultsVisible = true
		s.SubmitLabel = LabelDone
		s.Results = c.results.Nodes()
	case c.state.Busy():
		s.LoadingVisible = c.state != StateValidating
		s.SubmitLabel = LabelProcessing
		s.Status = c.opts.StatusMessages[c.status] + "..."
	default:
		s.FormVisible = true
		s.SubmitEnabled = true
		s.SubmitLabel = LabelSubmit
	}
	return s
}

func (c *Controller) publish() {
	c.view.Update(c.snapshot())
}
