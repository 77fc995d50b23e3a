package aggregates

// childPlan is the set of statements needed to bring one child collection of
// a recipe in line with an update payload.
type childPlan[T any] struct {
	inserts []T
	updates []T
	deletes []int
}

// planChildren diffs payload against the child ids currently stored for the
// recipe. A payload id matches a stored child at most once; a repeated or
// foreign id is treated as a new child.
func planChildren[T any](stored []int, payload []T, idOf func(T) int) childPlan[T] {
	claimed := make(map[int]bool, len(stored))
	for _, id := range stored {
		claimed[id] = false
	}

	var plan childPlan[T]
	for _, child := range payload {
		id := idOf(child)
		if used, owned := claimed[id]; owned && id != 0 && !used {
			claimed[id] = true
			plan.updates = append(plan.updates, child)
			continue
		}
		plan.inserts = append(plan.inserts, child)
	}
	for _, id := range stored {
		if !claimed[id] {
			plan.deletes = append(plan.deletes, id)
		}
	}
	return plan
}
