package tracers

// StepDedup holds the position of the last displayed line
type StepDedup struct {
	file  string
	line  int
	valid bool
}

func (s *StepDedup) Seen(file string, line int) bool {
	return s.valid && s.file == file && s.line == line
}

func (s *StepDedup) Mark(file string, line int) {
	s.file = file
	s.line = line
	s.valid = true
}
