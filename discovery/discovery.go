// Package discovery turns the business collection into the public listing: filter
// predicates, open-now annotation and optional nearest-first ranking.
package discovery

import (
	"math"
	"sort"
	"strings"
	"time"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/utils"

	"golang.org/x/text/cases"
)

// Query holds the user's filter state. Zero values leave a dimension unconstrained.
type Query struct {
	SearchText     string
	Category       string
	Neighborhood   string
	Open24hOnly    bool
	DeliveryOnly   bool
	PickupOnly     bool
	OpenNowOnly    bool
	SortByDistance bool
}

// Listing is a business as shown in discovery results.
type Listing struct {
	models.Business
	Distance      *float64 `json:"distance,omitempty"`
	DistanceLabel string   `json:"distance_label,omitempty"`
	OpenNow       bool     `json:"open_now"`
}

type matcher struct {
	query  Query
	needle string
	fold   cases.Caser
	now    time.Time
}

func newMatcher(q Query, now time.Time) *matcher {
	m := &matcher{query: q, fold: cases.Fold(), now: now}
	if s := strings.TrimSpace(q.SearchText); s != "" {
		m.needle = m.fold.String(s)
	}
	return m
}

func (m *matcher) match(b *models.Business) bool {
	if !b.Active() {
		return false
	}

	q := m.query
	switch q.Category {
	case "":
	case models.CategoryOfficial:
		if !b.IsOfficial {
			return false
		}
	case models.CategorySponsor:
		if !b.IsSponsor {
			return false
		}
	default:
		if b.Category != q.Category {
			return false
		}
	}

	if q.Neighborhood != "" && b.Neighborhood != q.Neighborhood {
		return false
	}
	if q.Open24hOnly && !b.Is24h {
		return false
	}
	if q.DeliveryOnly && !b.OffersDelivery {
		return false
	}
	if q.PickupOnly && !b.OffersPickup {
		return false
	}
	if q.OpenNowOnly && !b.IsOpenAt(m.now) {
		return false
	}

	if m.needle != "" {
		return m.contains(b.Name) || m.contains(b.Description) || m.contains(b.Code)
	}
	return true
}

func (m *matcher) contains(field string) bool {
	return field != "" && strings.Contains(m.fold.String(field), m.needle)
}

// Filter keeps the businesses matching q, preserving input order.
func Filter(businesses []models.Business, q Query, now time.Time) []models.Business {
	m := newMatcher(q, now)
	out := make([]models.Business, 0, len(businesses))
	for i := range businesses {
		if m.match(&businesses[i]) {
			out = append(out, businesses[i])
		}
	}
	return out
}

// Annotate sets the distance of every listing with both coordinates. Listings without
// coordinates are left untouched.
func Annotate(listings []Listing, pos Position) {
	for i := range listings {
		b := &listings[i].Business
		if !b.HasLocation() {
			continue
		}
		d := pos.DistanceTo(Position{Latitude: *b.Latitude, Longitude: *b.Longitude})
		listings[i].Distance = &d
		listings[i].DistanceLabel = utils.FormatDistance(d)
	}
}

// Rank annotates listings and orders them nearest first. Listings without a distance
// sort after all others; ties keep their input order.
func Rank(listings []Listing, pos Position) {
	Annotate(listings, pos)
	sort.SliceStable(listings, func(i, j int) bool {
		return sortKey(listings[i]) < sortKey(listings[j])
	})
}

func sortKey(l Listing) float64 {
	if l.Distance == nil {
		return math.Inf(1)
	}
	return *l.Distance
}

// Run filters businesses and builds the listing. Distance is annotated whenever a
// position is known; the nearest-first sort applies only when q asks for it.
func Run(businesses []models.Business, q Query, provider PositionProvider, now time.Time) []Listing {
	matched := Filter(businesses, q, now)

	listings := make([]Listing, len(matched))
	for i := range matched {
		listings[i] = Listing{Business: matched[i], OpenNow: matched[i].IsOpenAt(now)}
	}

	if provider == nil {
		return listings
	}
	pos, ok := provider.Position()
	if !ok {
		return listings
	}
	if q.SortByDistance {
		Rank(listings, pos)
	} else {
		Annotate(listings, pos)
	}
	return listings
}
