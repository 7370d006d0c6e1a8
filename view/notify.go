package view

import "sync"

// Notifier shows the blocking alert that ends a submission.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Notice is one alert.
type Notice struct {
	OK      bool
	Message string
}

// Recorder is a Notifier that keeps every alert it is given.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{OK: true, Message: msg})
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{OK: false, Message: msg})
}

// Notices returns a copy of the alerts shown so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
