package internal

type Scheduler struct {
	// commit rounds run by the current flush
	rounds int

	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		rounds:  0,
		running: false,
	}
}

// Run commits rounds while work is pending, each stamped with a fresh
// generation. Returns false without doing anything if a flush is already
// running on this runtime; the running flush picks the new work up.
func (s *Scheduler) Run(pending func() bool, commit func(UpdateID), overflow func()) bool {
	if s.running {
		return false
	}

	s.running = true
	s.rounds = 0
	defer func() { s.running = false }()

	limit := currentConfig().MaxUpdateRounds
	for pending() {
		if s.rounds >= limit {
			overflow()
			break
		}

		commit(NextUpdate())
		s.rounds++
	}

	return true
}

func (s *Scheduler) IsRunning() bool {
	return s.running
}

func (s *Scheduler) Rounds() int {
	return s.rounds
}
