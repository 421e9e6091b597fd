package state

import (
	"github.com/dori/bloc/internal/model"
)

// Stats summarizes the task collection for status bars and the CLI.
type Stats struct {
	Total    int
	Active   int
	Archived int
	Overdue  int
	DueToday int
	ByStatus map[model.Status]int
}

// Stats counts tasks as of the container's clock. Per-status counts cover
// active tasks only.
func (s *State) Stats() Stats {
	now := s.now()
	st := Stats{
		Total:    len(s.tasks),
		ByStatus: make(map[model.Status]int, len(model.Statuses())),
	}
	for _, status := range model.Statuses() {
		st.ByStatus[status] = 0
	}

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.IsArchived {
			st.Archived++
			continue
		}
		st.Active++
		st.ByStatus[t.Status]++
		if t.IsOverdue(now) {
			st.Overdue++
		}
		if t.IsDueToday(now) {
			st.DueToday++
		}
	}
	return st
}
