// Package listing provides the property listing model and data access.
// Listings are read-mostly catalog data the app browses and compares.
package listing

import "time"

// Listing is a property offered in the app's catalog.
type Listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Community string    `json:"community"`
	Price     int64     `json:"price"`
	Bedrooms  float64   `json:"bedrooms"`
	Bathrooms float64   `json:"bathrooms"`
	SqFt      int64     `json:"sqft"`
	CreatedAt time.Time `json:"created_at"`
}
