package catalog

import "time"

// Service es una entrada del catálogo (baño, tosa, etc.).
type Service struct {
	ID          string
	Name        string
	Description string
	Price       float64 // >= 0
	Duration    string  // texto libre ("60 min")
	ImageURL    string
	Rating      float64 // 0..5

	CreatedAt time.Time
	UpdatedAt time.Time
}
