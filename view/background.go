package view

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultBackgrounds are the decorative card backgrounds.
var DefaultBackgrounds = []string{
	"/atl-background-red.jpg",
	"/atl-background-green.jpg",
	"/atl-background.jpg",
}

// Picker chooses a background uniformly at random. It is safe for concurrent
// use.
type Picker struct {
	mu   sync.Mutex
	refs []string
	rnd  *rand.Rand
}

// NewPicker returns a Picker over refs. A nil src is seeded from the clock.
func NewPicker(refs []string, src rand.Source) *Picker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{
		refs: append([]string(nil), refs...),
		rnd:  rand.New(src),
	}
}

// Pick returns one of the references, or "" if there are none.
func (p *Picker) Pick() string {
	if len(p.refs) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs[p.rnd.Intn(len(p.refs))]
}

// Refs returns the references the picker draws from.
func (p *Picker) Refs() []string {
	return append([]string(nil), p.refs...)
}
