package listing

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals an unknown listing id.
var ErrNotFound = errors.New("listing: not found")

// Repository provides read and seed access to the listing catalog.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, title, community, price, bedrooms, bathrooms, sqft, created_at`

// Insert adds a listing to the catalog. Existing rows are replaced so
// seeding is idempotent.
func (r *Repository) Insert(l Listing) error {
	if _, err := r.db.Exec(
		`INSERT OR REPLACE INTO listings (id, title, community, price, bedrooms, bathrooms, sqft)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, l.Community, l.Price, l.Bedrooms, l.Bathrooms, l.SqFt,
	); err != nil {
		return fmt.Errorf("inserting listing: %w", err)
	}
	return nil
}

// GetByID returns a listing by its id.
func (r *Repository) GetByID(id string) (*Listing, error) {
	row := r.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns), id,
	)

	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", id, err)
	}
	return l, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	Community   string // empty = all
	MaxPrice    int64  // 0 = no cap
	MinBedrooms float64
}

// List returns catalog listings, optionally filtered, cheapest first.
func (r *Repository) List(opts ListOptions) ([]*Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.Community != "" {
		conditions = append(conditions, "LOWER(community) = LOWER(?)")
		args = append(args, opts.Community)
	}
	if opts.MaxPrice > 0 {
		conditions = append(conditions, "price <= ?")
		args = append(args, opts.MaxPrice)
	}
	if opts.MinBedrooms > 0 {
		conditions = append(conditions, "bedrooms >= ?")
		args = append(args, opts.MinBedrooms)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY price ASC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var listings []*Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// scanListing scans a listing from a database row.
func scanListing(row interface{ Scan(...interface{}) error }) (*Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.Title, &l.Community,
		&l.Price, &l.Bedrooms, &l.Bathrooms, &l.SqFt,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
