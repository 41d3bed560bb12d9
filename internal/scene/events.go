package scene

// EventType names a structural scene event.
type EventType string

const (
	EventObjectAdded    EventType = "object:added"
	EventObjectRemoved  EventType = "object:removed"
	EventObjectModified EventType = "object:modified"
	EventSceneLoaded    EventType = "scene:loaded"
	EventSceneCleared   EventType = "scene:cleared"
)

// Event is delivered synchronously to every subscriber when the scene's
// structure changes. Object is nil for scene-level events.
type Event struct {
	Type   EventType
	Object *Object
}

// Listener receives scene events. Listeners run on the caller's goroutine,
// in subscription order; a listener that reloads the scene must guard itself
// against the events its own reload fires.
type Listener func(Event)
