// Package reconcile provides diff logic for shop content sync.
// Used by handlers to compute the delta between current and desired state,
// enabling stateless PUT semantics where the server fetches current state,
// diffs against the request body, and executes only the necessary mutations.
package reconcile

import "merchantkit/internal/model"

// FAQDiff describes the mutations needed to reconcile the FAQ set.
// Operations should be applied in order: Delete → Update → Create
// so a recreated entry never collides with its own stale ID.
type FAQDiff struct {
	ToCreate []model.FAQ // Entries in desired with no matching current ID
	ToUpdate []model.FAQ // Entries in both whose text changed
	ToDelete []string    // IDs in current but not in desired
}

// IsEmpty returns true if the sets already match.
func (d *FAQDiff) IsEmpty() bool {
	return len(d.ToCreate) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// DiffFAQs computes the delta between current and desired FAQ entries.
// Matching is by metaobject ID; a desired entry with no ID, or with an ID
// the shop no longer has, counts as new.
//
// Algorithm:
//  1. Build a lookup map of current entries by ID
//  2. For each desired entry: known ID with changed text → update; unknown
//     or empty ID → create
//  3. For each current entry: ID absent from desired → delete
func DiffFAQs(current, desired []model.FAQ) *FAQDiff {
	diff := &FAQDiff{}

	currentByID := make(map[string]model.FAQ)
	for _, faq := range current {
		currentByID[faq.ID] = faq
	}

	keep := make(map[string]bool)
	for _, faq := range desired {
		existing, exists := currentByID[faq.ID]
		if faq.ID == "" || !exists {
			diff.ToCreate = append(diff.ToCreate, model.FAQ{
				Question: faq.Question,
				Answer:   faq.Answer,
			})
			continue
		}
		keep[faq.ID] = true
		if existing.Question != faq.Question || existing.Answer != faq.Answer {
			diff.ToUpdate = append(diff.ToUpdate, faq)
		}
		// Same text = no mutation needed
	}

	// Walk the slice, not the map, so delete order is deterministic.
	for _, faq := range current {
		if !keep[faq.ID] {
			diff.ToDelete = append(diff.ToDelete, faq.ID)
		}
	}

	return diff
}
