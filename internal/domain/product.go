package domain

import "time"

// Product is a single catalog entry. ImageKey points at the object storage
// key of the product image when one has been uploaded.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Category    string
	Description string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
