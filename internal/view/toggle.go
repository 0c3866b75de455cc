// Package view holds the presentation shells: the notification bell, the
// profile menu and the exchange connections page. Each renders markdown.
package view

import (
	"sync"

	"github.com/haierkeys/portfolio-dash/pkg/dismiss"
)

// toggle is an open/closed flag closed by pointer-downs outside its region
type toggle struct {
	mu        sync.Mutex
	open      bool
	dismisser *dismiss.Dismisser
}

func (t *toggle) attach(doc *dismiss.Document, region dismiss.Region) {
	t.dismisser = dismiss.Attach(doc, region, t.Close)
}

func (t *toggle) Toggle() {
	t.mu.Lock()
	t.open = !t.open
	t.mu.Unlock()
}

func (t *toggle) Open() {
	t.mu.Lock()
	t.open = true
	t.mu.Unlock()
}

func (t *toggle) Close() {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
}

func (t *toggle) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *toggle) detach() {
	if t.dismisser != nil {
		t.dismisser.Detach()
	}
}
