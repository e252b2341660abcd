// Package dashboard aggregates the owner's properties into headline figures.
package dashboard

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

// Stats are the dashboard figures
type Stats struct {
	PropertyCount int
	TotalValue    float64
	OccupiedCount int
}

// DisplayTotal formats the total value with thousands separators
func (s Stats) DisplayTotal() string {
	return properties.FormatAmount(s.TotalValue)
}

// Compute derives stats; a missing price counts as zero
func Compute(records []properties.Record) Stats {
	var s Stats
	for _, r := range records {
		s.PropertyCount++
		s.TotalValue += r.PriceValue()
		if r.IsOccupied {
			s.OccupiedCount++
		}
	}
	return s
}

// Load fetches and aggregates. Failures are logged and yield zero stats.
func Load(ctx context.Context, api properties.Lister) Stats {
	records, err := api.ListOwnerProperties(ctx)
	if err != nil {
		log.Err(err).Msg("Error fetching dashboard stats")
		return Stats{}
	}
	return Compute(records)
}
