package properties

import (
	"context"
	"strconv"
	"strings"

	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
)

// Record is a property listing as returned by the backend
type Record struct {
	ID          string   `json:"_id"`                   // Backend identifier
	Title       string   `json:"title"`                 // Listing title
	Address     string   `json:"address"`               // Street address
	Price       *float64 `json:"price"`                 // Positive; null in some payloads
	Description string   `json:"description,omitempty"` // Free text, optional
	Images      []string `json:"images,omitempty"`      // Ordered image paths
	IsOccupied  bool     `json:"isOccupied,omitempty"`  // Currently let
}

// PriceValue treats a missing price as zero
func (r Record) PriceValue() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}

// DisplayPrice formats the price with thousands separators, or N/A
func (r Record) DisplayPrice() string {
	if r.Price == nil {
		return "N/A"
	}
	return FormatAmount(*r.Price)
}

// FormatAmount renders n with comma thousands separators and at most two decimals
func FormatAmount(n float64) string {
	s := strconv.FormatFloat(n, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

// Payload is what the form submits on create or update
type Payload struct {
	Title       string
	Address     string
	Price       float64
	Description string
	Images      []files.File // new files only
	// ExistingImages lists the stored images kept by the owner; sent on update
	// so removed ones can be dropped by the backend
	ExistingImages []string
}

// Lister fetches the owner's properties
type Lister interface {
	ListOwnerProperties(ctx context.Context) ([]Record, error)
}

// Fetcher loads a single property
type Fetcher interface {
	GetProperty(ctx context.Context, id string) (Record, error)
}

// Saver creates or updates a property
type Saver interface {
	CreateProperty(ctx context.Context, p Payload) (Record, error)
	UpdateProperty(ctx context.Context, id string, p Payload) (Record, error)
}

// Deleter removes a property
type Deleter interface {
	DeleteProperty(ctx context.Context, id string) error
}

// API is the full backend surface used by the property workflows
type API interface {
	Lister
	Fetcher
	Saver
	Deleter
}
