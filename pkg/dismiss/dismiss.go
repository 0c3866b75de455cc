// Package dismiss closes a transient open state (a dropdown, a menu) when a
// pointer-down happens outside the component that owns it.
package dismiss

import "sync"

// Point is a pointer position in document coordinates
type Point struct {
	X, Y float64
}

// Node is an element of a component tree. Parent returns nil at the root.
type Node interface {
	Parent() Node
}

// PointerEvent 指针按下事件
type PointerEvent struct {
	Target   Node
	Position Point
}

// Region decides whether a pointer event lies inside a component
type Region interface {
	Contains(ev PointerEvent) bool
}

// RegionFunc adapts a plain function to Region
type RegionFunc func(ev PointerEvent) bool

func (f RegionFunc) Contains(ev PointerEvent) bool { return f(ev) }

// Rect is a bounding box; the right and bottom edges are exclusive
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(ev PointerEvent) bool {
	p := ev.Position
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Subtree treats Root and all of its descendants as inside.
// An event without a target is outside.
type Subtree struct {
	Root Node
}

func (s Subtree) Contains(ev PointerEvent) bool {
	if s.Root == nil {
		return false
	}
	for n := ev.Target; n != nil; n = n.Parent() {
		if n == s.Root {
			return true
		}
	}
	return false
}

// Document fans pointer-down events out to its listeners
// Document 文档级事件分发
type Document struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func(PointerEvent)
	order     []uint64
}

func NewDocument() *Document {
	return &Document{listeners: make(map[uint64]func(PointerEvent))}
}

// AddPointerDownListener registers fn and returns a function that removes it
func (d *Document) AddPointerDownListener(fn func(PointerEvent)) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners[id] = fn
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners, id)
			for i, v := range d.order {
				if v == id {
					d.order = append(d.order[:i:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

// DispatchPointerDown delivers ev to every listener in registration order
func (d *Document) DispatchPointerDown(ev PointerEvent) {
	d.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(d.order))
	for _, id := range d.order {
		fns = append(fns, d.listeners[id])
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Listeners returns the number of registered listeners
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// Dismisser binds one region to one close callback
type Dismisser struct {
	region  Region
	onClose func()
	remove  func()
}

// Attach starts watching doc. onClose runs for every pointer-down outside
// region until Detach is called. doc may be nil when events are fed through
// HandlePointerDown directly.
// Attach 监听区域外的指针按下事件
func Attach(doc *Document, region Region, onClose func()) *Dismisser {
	d := &Dismisser{region: region, onClose: onClose}
	if doc != nil {
		d.remove = doc.AddPointerDownListener(func(ev PointerEvent) { d.HandlePointerDown(ev) })
	}
	return d
}

// HandlePointerDown closes when ev lies outside the region and reports
// whether it did.
func (d *Dismisser) HandlePointerDown(ev PointerEvent) bool {
	if d.region != nil && d.region.Contains(ev) {
		return false
	}
	if d.onClose != nil {
		d.onClose()
	}
	return true
}

// Detach stops listening; safe to call more than once
func (d *Dismisser) Detach() {
	if d.remove != nil {
		d.remove()
	}
}
