// Package serve is the HTTP surface of the recognition form: it mounts a view
// per page load, feeds it change events, and runs submissions.
package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	gt "time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	zl "github.com/rs/zerolog"

	"recognition.dev/cheers/capture"
	"recognition.dev/cheers/form"
	"recognition.dev/cheers/metrics"
	"recognition.dev/cheers/view"
)

const (
	// StaticPrefix is where the assets directory is served.
	StaticPrefix = "/static/"
	// FullFormField marks a submit that carries every input of the form, so
	// absent checkboxes mean unchecked.
	FullFormField = "full"
	// BusyMessage answers a submit while another one is running.
	BusyMessage = "A submission is already in progress"
	// RejectedMessage answers a submit with required fields left empty.
	RejectedMessage = "Please fill out all required fields"
)

// Service serves the form and owns the mounted views. Handlers need to be
// registered with RegisterHandlers.
type Service struct {
	logger    zl.Logger
	tmpl      *template.Template
	deps      view.Deps
	assetsDir string
	views     *registry
}

// NewService instantiates the service. Views it mounts share deps and are
// dropped after ttl without activity.
func NewService(logger zl.Logger, tmpl *template.Template, deps view.Deps, assetsDir string, ttl gt.Duration) *Service {
	return &Service{
		logger:    logger,
		tmpl:      tmpl,
		deps:      deps,
		assetsDir: assetsDir,
		views:     newRegistry(ttl),
	}
}

// RegisterHandlers registers Service's handlers on the given router.
func RegisterHandlers(s *Service, router *mux.Router) {
	router.Use(instrument)
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unsupportedMethodError(w, r.Method, logger(r))
	})
	router.HandleFunc("/", s.mount).Methods("GET")
	router.HandleFunc("/hello", s.hello).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/views/{id}", s.render).Methods("GET")
	router.HandleFunc("/views/{id}/status", s.status).Methods("GET")
	router.HandleFunc("/views/{id}/preview.jpg", s.preview).Methods("GET")
	router.HandleFunc("/views/{id}/fields/{field}", s.setField).Methods("POST")
	router.HandleFunc("/views/{id}/checkboxes/{key}", s.setCheckbox).Methods("POST")
	router.HandleFunc("/views/{id}/submit", s.submit).Methods("POST")
	if s.assetsDir != "" {
		router.PathPrefix(StaticPrefix).Handler(http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(s.assetsDir))))
	}
}

// Handler returns the router wrapped in the request middleware.
func (s *Service) Handler() http.Handler {
	router := mux.NewRouter()
	RegisterHandlers(s, router)
	return alice.New(contextLogger, panicCatcher).Then(router)
}

type formArgs struct {
	ViewID        string
	Title         string
	BackgroundURL string
	State         form.State
	TopRow        []checkboxArgs
	BottomRow     []checkboxArgs
}

type checkboxArgs struct {
	Key     form.Key
	Label   string
	Checked bool
}

type resultArgs struct {
	Message string
	Reasons []string
}

type resultJSON struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

func (s *Service) mount(w http.ResponseWriter, r *http.Request) {
	v := view.New(s.deps)
	id := s.views.add(v)
	l := logger(r)
	l.Debug().Str("view", id).Msg("Mounted view")
	card, _ := v.Target()
	s.renderForm(w, r, id, card)
}

func (s *Service) render(w http.ResponseWriter, r *http.Request) {
	id, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.renderForm(w, r, id, v.Render())
}

func (s *Service) renderForm(w http.ResponseWriter, r *http.Request, id string, card capture.Card) {
	args := formArgs{
		ViewID:        id,
		Title:         card.Title,
		BackgroundURL: backgroundURL(card.Background),
		State:         card.State,
		TopRow:        checkboxRow(card.State.Checkboxes, form.TopRow),
		BottomRow:     checkboxRow(card.State.Checkboxes, form.BottomRow),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, FormTemplateName, args); err != nil {
		serverError(w, err, logger(r))
	}
}

func checkboxRow(c form.Checkboxes, row form.Row) []checkboxArgs {
	keys := form.RowKeys(row)
	args := make([]checkboxArgs, 0, len(keys))
	for _, k := range keys {
		args = append(args, checkboxArgs{Key: k, Label: k.Label(), Checked: c.Get(k)})
	}
	return args
}

// backgroundURL maps a background reference to the URL the page loads it
// from. Remote references are used as is.
func backgroundURL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return path.Join(StaticPrefix, ref)
}

func (s *Service) lookup(w http.ResponseWriter, r *http.Request) (string, *view.View, bool) {
	id := mux.Vars(r)["id"]
	v, ok := s.views.get(id)
	if !ok {
		failure(w, r, http.StatusNotFound, fmt.Sprintf("Unknown view: %s", id), logger(r))
		return id, nil, false
	}
	return id, v, true
}

func (s *Service) setField(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	l := logger(r)
	f, err := form.ParseField(mux.Vars(r)["field"])
	if err != nil {
		clientError(w, http.StatusBadRequest, err.Error(), l)
		return
	}
	if err := v.SetField(f, r.FormValue("value")); err != nil {
		clientError(w, http.StatusBadRequest, err.Error(), l)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) setCheckbox(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	l := logger(r)
	k, err := form.ParseKey(mux.Vars(r)["key"])
	if err != nil {
		clientError(w, http.StatusBadRequest, err.Error(), l)
		return
	}
	checked, err := strconv.ParseBool(r.FormValue("checked"))
	if err != nil {
		clientError(w, http.StatusBadRequest, fmt.Sprintf("Invalid checked value: %q", r.FormValue("checked")), l)
		return
	}
	if err := v.SetCheckbox(k, checked); err != nil {
		clientError(w, http.StatusBadRequest, err.Error(), l)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) status(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": v.Status().String()})
}

func (s *Service) preview(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	l := logger(r)
	card, ok := v.Target()
	if !ok {
		clientError(w, http.StatusNotFound, "View is closed", l)
		return
	}
	o := capture.DefaultOptions
	if sc := r.URL.Query().Get("scale"); sc != "" {
		f, err := strconv.ParseFloat(sc, 64)
		if err != nil || f <= 0 || f > 4 {
			clientError(w, http.StatusBadRequest, fmt.Sprintf("Invalid scale: %s", sc), l)
			return
		}
		o.Scale = f
	}
	img, err := s.deps.Rasterizer.Rasterize(r.Context(), card, o)
	if err != nil {
		serverError(w, err, l)
		return
	}
	b, err := capture.EncodeJPEG(img, capture.UploadQuality)
	if err != nil {
		serverError(w, err, l)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Write(b)
}

func (s *Service) submit(w http.ResponseWriter, r *http.Request) {
	id, v, ok := s.lookup(w, r)
	if !ok {
		return
	}
	l := logger(r).With().Str("view", id).Logger()
	if err := r.ParseForm(); err != nil {
		failure(w, r, http.StatusBadRequest, err.Error(), l)
		return
	}
	if err := applyForm(v, r); err != nil {
		failure(w, r, http.StatusBadRequest, err.Error(), l)
		return
	}

	// Once triggered a submission runs to completion even if the client
	// goes away.
	ctx := context.WithoutCancel(r.Context())
	var rec view.Recorder
	out, err := v.Submit(ctx, &rec)
	if err == view.ErrBusy {
		failure(w, r, http.StatusConflict, BusyMessage, l)
		return
	}
	if err != nil {
		internalError(w, r, err, l)
		return
	}

	switch out.Kind {
	case view.Aborted:
		w.WriteHeader(http.StatusNoContent)
	case view.Rejected:
		s.writeResult(w, r, http.StatusBadRequest, FailureTemplateName,
			resultJSON{OK: false, Message: RejectedMessage, Reasons: out.Reasons})
	case view.Failure:
		s.writeResult(w, r, http.StatusBadGateway, FailureTemplateName, resultJSON{OK: false, Message: out.Message})
	case view.Success:
		s.views.remove(id)
		l.Info().Msg("Recognition submitted")
		s.writeResult(w, r, http.StatusOK, SuccessTemplateName, resultJSON{OK: true, Message: out.Message})
	}
}

// applyForm copies posted values into the view. Fields absent from the post
// are left alone; checkboxes are only reset when the whole form was posted.
func applyForm(v *view.View, r *http.Request) error {
	for _, f := range form.Fields() {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			if err := v.SetField(f, vals[0]); err != nil {
				return err
			}
		}
	}
	if r.PostForm.Get(FullFormField) == "" {
		return nil
	}
	for _, k := range form.Keys() {
		if err := v.SetCheckbox(k, checkedValue(r.PostForm.Get(string(k)))); err != nil {
			return err
		}
	}
	return nil
}

func checkedValue(s string) bool {
	if s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

func (s *Service) writeResult(w http.ResponseWriter, r *http.Request, code int, tmpl string, res resultJSON) {
	if wantsJSON(r) {
		writeJSON(w, code, res, logger(r))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.tmpl.ExecuteTemplate(w, tmpl, resultArgs{Message: res.Message, Reasons: res.Reasons}); err != nil {
		l := logger(r)
		l.Error().Err(err).Msg("Could not render result")
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, code int, res resultJSON, l zl.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		l.Error().Err(err).Msg("Could not write result")
	}
}

// failure is clientError for handlers the page's script calls: JSON
// clients get a result they can show.
func failure(w http.ResponseWriter, r *http.Request, code int, msg string, l zl.Logger) {
	if !wantsJSON(r) {
		clientError(w, code, msg, l)
		return
	}
	l.Info().Int("status", code).Msg(msg)
	writeJSON(w, code, resultJSON{OK: false, Message: msg}, l)
}

// internalError is serverError for handlers the page's script calls.
func internalError(w http.ResponseWriter, r *http.Request, err error, l zl.Logger) {
	if !wantsJSON(r) {
		serverError(w, err, l)
		return
	}
	l.Error().Int("status", http.StatusInternalServerError).Err(err).Send()
	writeJSON(w, http.StatusInternalServerError, resultJSON{OK: false, Message: view.ErrorPrefix + err.Error()}, l)
}

func unsupportedMethodError(w http.ResponseWriter, m string, l zl.Logger) {
	clientError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Unsupported method: %s", m), l)
}

func clientError(w http.ResponseWriter, code int, body string, l zl.Logger) {
	w.WriteHeader(code)
	l.Info().Int("status", code).Msg(body)
	io.Copy(w, strings.NewReader(body))
}

func serverError(w http.ResponseWriter, err error, l zl.Logger) {
	w.WriteHeader(http.StatusInternalServerError)
	l.Error().Int("status", http.StatusInternalServerError).Err(err).Send()
}
