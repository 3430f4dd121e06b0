package catalog

import "errors"

// LabelEntry is one row of a single-label reference table (states,
// user_types, truck_types, shipment_priorities).
type LabelEntry struct {
	ID    int
	Value string
}

// ContentType is the priced cargo content catalog.
type ContentType struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

var (
	ErrEntryNotFound       = errors.New("entry not found")
	ErrContentTypeNotFound = errors.New("content type not found")
)
