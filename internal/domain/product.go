package domain

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when the external catalog omits optional fields
const (
	DefaultDescription = "No description available"
	DefaultImageURL    = "https://via.placeholder.com/150"
	DefaultCategory    = "Uncategorized"
)

// Product represents a scanned item in the inventory catalog
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Barcode     string    `json:"barcode" db:"barcode"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
