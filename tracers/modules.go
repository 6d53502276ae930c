package tracers

// ModuleTracker remembers the last announced module only, not a stack.
// Only calls are checked; returning to a caller in another module does not announce it.
type ModuleTracker struct {
	last string
}

func (m *ModuleTracker) Changed(path string) bool {
	return path != m.last
}

func (m *ModuleTracker) Announced(path string) {
	m.last = path
}

func (m *ModuleTracker) Current() string {
	return m.last
}
