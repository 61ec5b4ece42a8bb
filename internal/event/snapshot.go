package event

// Snapshot records the events seen by a previous scrape, keyed by UID.
type Snapshot struct {
	UpdatedAt string                    `json:"updated_at"`
	Events    map[string]*CalendarEvent `json:"events"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make(map[string]*CalendarEvent),
	}
}

// CreateSnapshot builds a snapshot from a list of events
func CreateSnapshot(events []*CalendarEvent, updatedAt string) *Snapshot {
	snapshot := NewSnapshot()
	snapshot.UpdatedAt = updatedAt
	for _, evt := range events {
		snapshot.Events[evt.UID()] = evt
	}
	return snapshot
}

// Diff returns the events from current that are not present in previous,
// preserving their order. A nil previous snapshot marks everything new.
func Diff(previous *Snapshot, current []*CalendarEvent) []*CalendarEvent {
	fresh := make([]*CalendarEvent, 0)
	for _, evt := range current {
		if previous == nil || previous.Events[evt.UID()] == nil {
			fresh = append(fresh, evt)
		}
	}
	return fresh
}
