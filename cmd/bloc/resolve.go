package main

import (
	"fmt"
	"strings"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
)

// shortID is how ids are printed; any unique prefix is accepted back
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findTask resolves a full id or a unique id prefix
func findTask(st *state.State, ref string) (model.Task, error) {
	if t, ok := st.Task(ref); ok {
		return t, nil
	}
	var matches []model.Task
	for _, t := range st.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("%q matches %d tasks; use more of the id", ref, len(matches))
	}
}

// findProject resolves an id, a unique id prefix or a case-insensitive name
func findProject(st *state.State, ref string) (model.Project, error) {
	if p, ok := st.Project(ref); ok {
		return p, nil
	}
	var matches []model.Project
	for _, p := range st.Projects() {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.Project{}, fmt.Errorf("no project matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Project{}, fmt.Errorf("%q matches %d projects; use more of the id", ref, len(matches))
	}
}
