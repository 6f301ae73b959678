package skill

import "errors"

// ErrUnknownSubskill marks an incoming entry whose id is not among the
// parent's persisted subskills. A skill cannot adopt another skill's
// children.
var ErrUnknownSubskill = errors.New("subskill does not belong to this skill")

// Plan is the action set produced by diffing an incoming subskill list
// against the persisted one.
type Plan struct {
	Create []Input
	Update []Input
	Delete []int64
}

// Reconcile splits incoming entries by intent: entries with an id
// update that persisted subskill, entries without one create a new
// subskill, and persisted ids never referenced are deleted. Delete
// order follows the order of existing.
func Reconcile(existing []int64, incoming []Input) (Plan, error) {
	known := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	var plan Plan
	seen := make(map[int64]struct{}, len(incoming))
	for _, in := range incoming {
		if in.ID == nil {
			plan.Create = append(plan.Create, in)
			continue
		}
		if _, ok := known[*in.ID]; !ok {
			return Plan{}, ErrUnknownSubskill
		}
		seen[*in.ID] = struct{}{}
		plan.Update = append(plan.Update, in)
	}

	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			plan.Delete = append(plan.Delete, id)
		}
	}
	return plan, nil
}
