package schedule

// Named is anything on the portal with a display name. Teachers are the
// only kind the timetable exposes today.
type Named interface {
	DisplayName() string
}

type Teacher struct {
	Name string `json:"name"`
}

func (t Teacher) DisplayName() string {
	return t.Name
}
