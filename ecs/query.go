package ecs

// Query returns the live entities having every kind, in the dense order of the
// smallest store.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	var smallest *SparseSet
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		if w.hasAll(e, kinds) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity matching every kind.
func (w *World) First(kinds ...Kind) (Entity, bool) {
	matches := w.Query(kinds...)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}

func (w *World) hasAll(e Entity, kinds []Kind) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, k := range kinds {
		if !w.store(k.ID(), false).Has(e) {
			return false
		}
	}
	return true
}
