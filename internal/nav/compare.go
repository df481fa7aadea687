package nav

// CompareLimit is the maximum number of properties in the comparison list.
const CompareLimit = 4

// Reasons a property was not added to the comparison list.
const (
	ReasonAlreadyAdded = "already-added"
	ReasonLimitReached = "limit-reached"
)

// CompareResult reports what AddToComparison did, so callers can drive
// user feedback.
type CompareResult struct {
	Added  bool
	Reason string // empty when Added
}

// AddToComparison appends a property id to the comparison list.
// The duplicate check runs before the limit check: re-adding an id that is
// already present reports already-added even when the list is full.
func (s *State) AddToComparison(id string) CompareResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, have := range s.comparison {
		if have == id {
			return CompareResult{Reason: ReasonAlreadyAdded}
		}
	}
	if len(s.comparison) >= CompareLimit {
		return CompareResult{Reason: ReasonLimitReached}
	}

	s.comparison = append(s.comparison, id)
	return CompareResult{Added: true}
}

// RemoveFromComparison removes a property id; no-op when absent.
func (s *State) RemoveFromComparison(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, have := range s.comparison {
		if have == id {
			s.comparison = append(s.comparison[:i], s.comparison[i+1:]...)
			return
		}
	}
}

// ClearComparison empties the list unconditionally.
func (s *State) ClearComparison() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparison = nil
}

// ComparisonList returns a copy of the current comparison ids in order.
func (s *State) ComparisonList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.comparison...)
}
