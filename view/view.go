// Package view implements the recognition form view: it owns one form's
// state, picks the card background, and runs the capture-and-upload submit.
package view

import (
	"context"
	"image"
	"sync"
	gt "time"

	"github.com/pkg/errors"
	zl "github.com/rs/zerolog"

	"recognition.dev/cheers/capture"
	"recognition.dev/cheers/form"
	"recognition.dev/cheers/metrics"
	"recognition.dev/cheers/upload"
	"recognition.dev/cheers/util/time"
)

const (
	// SuccessMessage is the alert shown after an upload is accepted.
	SuccessMessage = "Recognition form submitted successfully!"
	// ErrorPrefix starts the alert shown when a submission fails.
	ErrorPrefix = "Error submitting form: "
)

// ErrBusy is returned by Submit while another submission of the same view is
// in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Rasterizer draws a card to a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, c capture.Card, o capture.Options) (image.Image, error)
}

// Uploader sends a captured card to the upload endpoint.
type Uploader interface {
	Upload(ctx context.Context, req upload.Request) error
}

// Deps are the collaborators shared by every view.
type Deps struct {
	Title      string
	Location   string
	Picker     *Picker
	Rasterizer Rasterizer
	Uploader   Uploader
	Logger     zl.Logger
}

// View is one mounted form. Its methods are safe for concurrent use: field
// edits may arrive while a submission is running.
type View struct {
	deps Deps

	mu         sync.Mutex
	state      form.State
	status     Status
	background string
	mounted    bool
}

// New mounts a view with empty state and renders it once.
func New(d Deps) *View {
	v := &View{deps: d, mounted: true}
	v.Render()
	return v
}

// Render produces the card as it should be displayed now. Each render picks a
// new background; the most recent one is what a capture shows.
func (v *View) Render() capture.Card {
	bg := ""
	if v.deps.Picker != nil {
		bg = v.deps.Picker.Pick()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.background = bg
	return v.cardLocked()
}

// Target returns the handle to the view's rendered card. It reports false
// once the view has been unmounted.
func (v *View) Target() (capture.Card, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return capture.Card{}, false
	}
	return v.cardLocked(), true
}

func (v *View) cardLocked() capture.Card {
	return capture.Card{Title: v.deps.Title, Background: v.background, State: v.state}
}

// Close unmounts the view. A submission already running completes; later
// ones abort.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mounted = false
}

func (v *View) State() form.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *View) setStatus(s Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = s
}

// SetField is the change handler for a text input.
func (v *View) SetField(f form.Field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, err := v.state.WithField(f, value)
	if err != nil {
		return err
	}
	v.state = s
	return nil
}

// SetCheckbox is the change handler for a checkbox.
func (v *View) SetCheckbox(k form.Key, checked bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, err := v.state.WithCheckbox(k, checked)
	if err != nil {
		return err
	}
	v.state = s
	return nil
}

// Submit captures the card and uploads it, then shows exactly one alert
// through n. The form state is left as it is either way. Submit returns
// ErrBusy, without alerting, if a submission is already running.
func (v *View) Submit(ctx context.Context, n Notifier) (Outcome, error) {
	v.mu.Lock()
	if v.status.InFlight() {
		v.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	if reasons := v.state.Validate(); len(reasons) > 0 {
		v.mu.Unlock()
		metrics.RecordSubmission(Rejected.String())
		return Outcome{Kind: Rejected, Reasons: reasons}, nil
	}
	v.status = Capturing
	v.mu.Unlock()

	out := v.submit(ctx, n)
	metrics.RecordSubmission(out.Kind.String())
	return out, nil
}

func (v *View) submit(ctx context.Context, n Notifier) Outcome {
	l := v.deps.Logger
	err := v.captureAndUpload(ctx)
	if errors.Is(err, errNoTarget) {
		v.setStatus(Idle)
		l.Info().Msg("Capture target missing; submission dropped")
		return Outcome{Kind: Aborted}
	}
	if err != nil {
		v.setStatus(Failed)
		l.Error().Err(err).Msg("Submission error")
		msg := ErrorPrefix + err.Error()
		n.Error(msg)
		v.setStatus(Idle)
		return Outcome{Kind: Failure, Message: msg}
	}
	v.setStatus(Succeeded)
	n.Success(SuccessMessage)
	v.setStatus(Idle)
	return Outcome{Kind: Success, Message: SuccessMessage}
}

var errNoTarget = errors.New("capture target not found")

func (v *View) captureAndUpload(ctx context.Context) error {
	card, ok := v.Target()
	if !ok {
		return errNoTarget
	}

	start := gt.Now()
	img, err := v.deps.Rasterizer.Rasterize(ctx, card, capture.DefaultOptions)
	if err != nil {
		return err
	}
	uri, err := capture.EncodeDataURI(img, capture.UploadQuality)
	if err != nil {
		return err
	}
	metrics.RecordCapture(gt.Since(start), len(uri))

	v.setStatus(Uploading)
	req := upload.Request{
		Image: uri,
		Metadata: upload.Metadata{
			Location:  v.deps.Location,
			Timestamp: time.Timestamp(time.Now()),
		},
	}
	start = gt.Now()
	err = v.deps.Uploader.Upload(ctx, req)
	metrics.RecordUpload(gt.Since(start), err)
	return err
}
