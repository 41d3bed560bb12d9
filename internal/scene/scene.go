package scene

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMissingID   = errors.New("object has no id")
	ErrDuplicateID = errors.New("object id already present in scene")
	ErrNotFound    = errors.New("object not found in scene")
)

// Scene is the live, in-memory collection of drawable objects. The slice
// order is the draw order (later objects render on top). All access is
// expected from a single goroutine; gesture handlers never run concurrently.
type Scene struct {
	objects []*Object
	index   map[string]*Object

	backgroundSrc string

	listeners    map[int]Listener
	nextListener int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		index:     make(map[string]*Object),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener for structural events and returns an
// unsubscribe function.
func (s *Scene) Subscribe(l Listener) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

func (s *Scene) emit(ev Event) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if l, ok := s.listeners[id]; ok {
			l(ev)
		}
	}
}

// Add places an object on top of the draw order. The object must already
// carry an id; ids are unique across all live objects.
func (s *Scene) Add(o *Object) error {
	if o.ID == "" {
		return ErrMissingID
	}
	if _, exists := s.index[o.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
	}
	s.objects = append(s.objects, o)
	s.index[o.ID] = o
	s.emit(Event{Type: EventObjectAdded, Object: o})
	return nil
}

// Remove deletes the object with the given id and returns it, or nil if the
// id is not on the scene.
func (s *Scene) Remove(id string) *Object {
	o, ok := s.index[id]
	if !ok {
		return nil
	}
	delete(s.index, id)
	for i, obj := range s.objects {
		if obj.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	s.emit(Event{Type: EventObjectRemoved, Object: o})
	return o
}

// Get returns the object with the given id, or nil.
func (s *Scene) Get(id string) *Object {
	return s.index[id]
}

// Objects returns the draw-order object list. The slice is a copy; the
// objects are shared.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of live objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// NotifyModified reports that an object's geometry or attributes changed in
// place, so journaling and appearance listeners can react.
func (s *Scene) NotifyModified(id string) {
	if o, ok := s.index[id]; ok {
		s.emit(Event{Type: EventObjectModified, Object: o})
	}
}

// Seats returns every seat object in draw order.
func (s *Scene) Seats() []*Object {
	var seats []*Object
	for _, o := range s.objects {
		if o.IsSeat() {
			seats = append(seats, o)
		}
	}
	return seats
}

// SeatsByRow rebuilds the row index by scanning the scene. Rows never hold a
// seat list themselves; the weak rowId reference on each seat is the only
// linkage, so deleting seats can never leave a dangling back-pointer.
func (s *Scene) SeatsByRow() map[string][]*Object {
	byRow := make(map[string][]*Object)
	for _, o := range s.objects {
		if o.IsSeat() && o.RowID != "" {
			byRow[o.RowID] = append(byRow[o.RowID], o)
		}
	}
	return byRow
}

// BringToFront moves the object to the top of the draw order.
func (s *Scene) BringToFront(id string) {
	for i, o := range s.objects {
		if o.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.objects = append(s.objects, o)
			return
		}
	}
}

// SetBackground sets the background image source.
func (s *Scene) SetBackground(src string) {
	s.backgroundSrc = src
}

// Background returns the background image source, if any.
func (s *Scene) Background() string {
	return s.backgroundSrc
}

// Clear removes every object and the background, emitting a single
// scene:cleared event rather than one removal per object.
func (s *Scene) Clear() {
	s.objects = nil
	s.index = make(map[string]*Object)
	s.backgroundSrc = ""
	s.emit(Event{Type: EventSceneCleared})
}
