package listing

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/karimbakri/homeport/internal/db"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}

func seedCatalog(t *testing.T, repo *Repository) {
	t.Helper()
	seed := []Listing{
		{ID: "p1", Title: "Marina View 2BR", Community: "Marina", Price: 1800000, Bedrooms: 2, Bathrooms: 2, SqFt: 1250},
		{ID: "p2", Title: "Palm Villa", Community: "Palm", Price: 6500000, Bedrooms: 4, Bathrooms: 5, SqFt: 4100},
		{ID: "p3", Title: "Marina Studio", Community: "Marina", Price: 950000, Bedrooms: 0.5, Bathrooms: 1, SqFt: 520},
		{ID: "p4", Title: "Downtown Loft", Community: "Downtown", Price: 2400000, Bedrooms: 1, Bathrooms: 1.5, SqFt: 900},
	}
	for _, l := range seed {
		if err := repo.Insert(l); err != nil {
			t.Fatalf("insert %s: %v", l.ID, err)
		}
	}
}

func TestGetByID(t *testing.T) {
	repo := testRepository(t)
	seedCatalog(t, repo)

	l, err := repo.GetByID("p2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.Title != "Palm Villa" || l.Price != 6500000 {
		t.Errorf("listing = %+v", l)
	}
	if l.CreatedAt.IsZero() {
		t.Error("created_at was not populated")
	}

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestInsertReplacesExisting(t *testing.T) {
	repo := testRepository(t)
	seedCatalog(t, repo)

	if err := repo.Insert(Listing{ID: "p1", Title: "Marina View 2BR (relisted)", Community: "Marina", Price: 1750000, Bedrooms: 2, Bathrooms: 2, SqFt: 1250}); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	l, err := repo.GetByID("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.Price != 1750000 {
		t.Errorf("price = %d, want the replaced value", l.Price)
	}

	all, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("catalog size = %d, want 4", len(all))
	}
}

func TestListFilters(t *testing.T) {
	repo := testRepository(t)
	seedCatalog(t, repo)

	tests := []struct {
		name    string
		opts    ListOptions
		wantIDs []string
	}{
		{"all cheapest first", ListOptions{}, []string{"p3", "p1", "p4", "p2"}},
		{"by community", ListOptions{Community: "marina"}, []string{"p3", "p1"}},
		{"price cap", ListOptions{MaxPrice: 2000000}, []string{"p3", "p1"}},
		{"min bedrooms", ListOptions{MinBedrooms: 2}, []string{"p1", "p2"}},
		{"combined", ListOptions{Community: "Marina", MinBedrooms: 2}, []string{"p1"}},
		{"no match", ListOptions{Community: "Hills"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(tt.opts)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d listings, want %d", len(got), len(tt.wantIDs))
			}
			for i, l := range got {
				if l.ID != tt.wantIDs[i] {
					t.Errorf("result[%d] = %s, want %s", i, l.ID, tt.wantIDs[i])
				}
			}
		})
	}
}
