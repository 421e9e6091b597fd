package query

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dori/bloc/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare orders two tasks; negative means a sorts first.
type Compare func(a, b *model.Task) int

// Stable returns a sorted copy of tasks. Ties keep their input order.
func Stable(tasks []model.Task, cmpFn Compare) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int { return cmpFn(&a, &b) })
	return out
}

// ComparePriority orders high before medium before low.
func ComparePriority(a, b *model.Task) int {
	return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
}

// CompareDueDate orders earliest due first; undated tasks go last.
func CompareDueDate(a, b *model.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}

// CompareCreatedDesc orders newest first.
func CompareCreatedDesc(a, b *model.Task) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

// CompareCreatedAsc orders oldest first.
func CompareCreatedAsc(a, b *model.Task) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

// CompareUpdatedDesc orders most recently updated first.
func CompareUpdatedDesc(a, b *model.Task) int {
	return b.UpdatedAt.Compare(a.UpdatedAt)
}

// CompareOrder orders by the manual position.
func CompareOrder(a, b *model.Task) int {
	return cmp.Compare(a.Order, b.Order)
}

// CompareStatus orders by workflow stage.
func CompareStatus(a, b *model.Task) int {
	return cmp.Compare(a.Status.Index(), b.Status.Index())
}

// Then chains comparators; later ones break ties of earlier ones.
func Then(cmps ...Compare) Compare {
	return func(a, b *model.Task) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// SortByPriority sorts high to low priority.
func SortByPriority(tasks []model.Task) []model.Task {
	return Stable(tasks, ComparePriority)
}

// SortByDueDate sorts earliest due first, undated last.
func SortByDueDate(tasks []model.Task) []model.Task {
	return Stable(tasks, CompareDueDate)
}

// SortByCreated sorts newest first.
func SortByCreated(tasks []model.Task) []model.Task {
	return Stable(tasks, CompareCreatedDesc)
}

// SortByCreatedAsc sorts oldest first.
func SortByCreatedAsc(tasks []model.Task) []model.Task {
	return Stable(tasks, CompareCreatedAsc)
}

// SortByUpdated sorts most recently updated first.
func SortByUpdated(tasks []model.Task) []model.Task {
	return Stable(tasks, CompareUpdatedDesc)
}

// SortByOrder sorts by manual position.
func SortByOrder(tasks []model.Task) []model.Task {
	return Stable(tasks, CompareOrder)
}

// SortByTitle sorts alphabetically using English collation rules, so
// "apple" < "Banana" < "cherry".
func SortByTitle(tasks []model.Task) []model.Task {
	c := collate.New(language.English)
	return Stable(tasks, func(a, b *model.Task) int {
		return c.CompareString(a.Title, b.Title)
	})
}

// SortByPriorityAndDueDate sorts by priority, then due date.
func SortByPriorityAndDueDate(tasks []model.Task) []model.Task {
	return Stable(tasks, Then(ComparePriority, CompareDueDate))
}

// SortByStatusAndPriority sorts by workflow stage, then priority.
func SortByStatusAndPriority(tasks []model.Task) []model.Task {
	return Stable(tasks, Then(CompareStatus, ComparePriority))
}

// SortKey names a list ordering offered to the user.
type SortKey string

const (
	SortManual   SortKey = "manual"
	SortPriority SortKey = "priority"
	SortDueDate  SortKey = "due"
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
	SortTitle    SortKey = "title"
)

// SortKeys returns the keys in the order the UI cycles through them.
func SortKeys() []SortKey {
	return []SortKey{SortManual, SortPriority, SortDueDate, SortCreated, SortUpdated, SortTitle}
}

// ParseSortKey validates s.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return SortManual
}

// Label returns a short display name
func (k SortKey) Label() string {
	switch k {
	case SortManual:
		return "Manual"
	case SortPriority:
		return "Priority"
	case SortDueDate:
		return "Due date"
	case SortCreated:
		return "Newest"
	case SortUpdated:
		return "Recently updated"
	case SortTitle:
		return "Title"
	default:
		return string(k)
	}
}

// Sort orders tasks by key. Unknown keys fall back to manual order.
func Sort(tasks []model.Task, key SortKey) []model.Task {
	switch key {
	case SortPriority:
		return SortByPriority(tasks)
	case SortDueDate:
		return SortByDueDate(tasks)
	case SortCreated:
		return SortByCreated(tasks)
	case SortUpdated:
		return SortByUpdated(tasks)
	case SortTitle:
		return SortByTitle(tasks)
	default:
		return SortByOrder(tasks)
	}
}
