package progress

// Event is one transient progress notification emitted during a pipeline run.
type Event struct {
	Stage      string
	Message    string
	Percentage int // 0..100, non-decreasing within one run
}

// Func observes Events. A nil Func is valid and observes nothing.
type Func func(Event)

// Emit invokes the observer when present. Percentage is clamped to [0,100].
func (f Func) Emit(stage, message string, percentage int) {
	if f == nil {
		return
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	f(Event{Stage: stage, Message: message, Percentage: percentage})
}
