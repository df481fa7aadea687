package nav

import (
	"fmt"
	"reflect"
	"testing"
)

func TestAddToComparison(t *testing.T) {
	s := NewState()

	res := s.AddToComparison("p1")
	if !res.Added || res.Reason != "" {
		t.Fatalf("first add = %+v, want added", res)
	}

	// Idempotent beyond the first call.
	res = s.AddToComparison("p1")
	if res.Added || res.Reason != ReasonAlreadyAdded {
		t.Fatalf("second add = %+v, want already-added", res)
	}
	if got := s.ComparisonList(); len(got) != 1 {
		t.Errorf("list length = %d, want 1", len(got))
	}
}

func TestComparisonLimit(t *testing.T) {
	s := NewState()

	for i := 1; i <= CompareLimit; i++ {
		res := s.AddToComparison(fmt.Sprintf("p%d", i))
		if !res.Added {
			t.Fatalf("add p%d = %+v, want added", i, res)
		}
	}

	res := s.AddToComparison("p5")
	if res.Added || res.Reason != ReasonLimitReached {
		t.Fatalf("fifth distinct add = %+v, want limit-reached", res)
	}
	if got := s.ComparisonList(); len(got) != CompareLimit {
		t.Errorf("list length = %d, want %d", len(got), CompareLimit)
	}
}

func TestDuplicateCheckedBeforeLimit(t *testing.T) {
	s := NewState()

	for i := 1; i <= CompareLimit; i++ {
		s.AddToComparison(fmt.Sprintf("p%d", i))
	}

	// List is full, but p4 is already present: must report already-added,
	// never limit-reached.
	res := s.AddToComparison("p4")
	if res.Reason != ReasonAlreadyAdded {
		t.Fatalf("re-add on full list = %+v, want already-added", res)
	}
}

func TestRemoveFromComparison(t *testing.T) {
	s := NewState()
	s.AddToComparison("p1")
	s.AddToComparison("p2")
	s.AddToComparison("p3")

	s.RemoveFromComparison("p2")
	if got := s.ComparisonList(); !reflect.DeepEqual(got, []string{"p1", "p3"}) {
		t.Errorf("list = %v, want [p1 p3]", got)
	}

	// Absent id: no-op.
	s.RemoveFromComparison("p9")
	if got := s.ComparisonList(); len(got) != 2 {
		t.Errorf("list length after absent removal = %d, want 2", len(got))
	}

	// Removing frees a slot below the limit again.
	s.AddToComparison("p4")
	s.AddToComparison("p5")
	res := s.AddToComparison("p6")
	if res.Added || res.Reason != ReasonLimitReached {
		t.Errorf("add past refilled limit = %+v, want limit-reached", res)
	}
}

func TestClearComparison(t *testing.T) {
	s := NewState()
	s.AddToComparison("p1")
	s.AddToComparison("p2")

	s.ClearComparison()
	if got := s.ComparisonList(); len(got) != 0 {
		t.Errorf("list after clear = %v, want empty", got)
	}

	// Cleared list accepts new entries again.
	if res := s.AddToComparison("p1"); !res.Added {
		t.Errorf("add after clear = %+v, want added", res)
	}
}

func TestComparisonScenario(t *testing.T) {
	s := NewState()

	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		if res := s.AddToComparison(id); !res.Added {
			t.Fatalf("add %s = %+v, want added", id, res)
		}
	}
	if res := s.AddToComparison("p4"); res.Added || res.Reason != ReasonAlreadyAdded {
		t.Fatalf("re-add p4 = %+v, want already-added", res)
	}
	if res := s.AddToComparison("p5"); res.Added || res.Reason != ReasonLimitReached {
		t.Fatalf("add p5 = %+v, want limit-reached", res)
	}
	if got := s.ComparisonList(); !reflect.DeepEqual(got, []string{"p1", "p2", "p3", "p4"}) {
		t.Errorf("final list = %v", got)
	}
}

func TestComparisonListReturnsCopy(t *testing.T) {
	s := NewState()
	s.AddToComparison("p1")

	got := s.ComparisonList()
	got[0] = "mutated"

	if s.ComparisonList()[0] != "p1" {
		t.Error("mutating the returned slice leaked into the store")
	}
}
