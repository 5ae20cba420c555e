package core

import "sort"

// OrderTasks returns a copy of tasks with dated tasks first by ascending due
// date, then undated ones. Ties go to the newest task, then the lowest id.
func OrderTasks(tasks []TaskView) []TaskView {
	out := make([]TaskView, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		return taskLess(out[i].Task, out[j].Task)
	})
	return out
}

func taskLess(a, b Task) bool {
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}
