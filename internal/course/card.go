// ABOUTME: Display helpers that turn Course records into compact card summaries
// ABOUTME: Used by front ends that page courses in a carousel or terminal list

package course

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// DefaultPageSize is how many cards a carousel page shows when collapsed.
const DefaultPageSize = 3

// Card is the flattened, display-ready view of a Course.
type Card struct {
	ID       int
	Title    string
	Subtitle string
	Price    string
	Schedule string
	Places   string
	BookURL  string
}

// PriceLabel formats the price with its currency symbol, falling back to the
// ISO currency code.
func (c Course) PriceLabel() string {
	price := strings.TrimSpace(c.Price)
	if price == "" {
		return ""
	}
	if c.CurrencySymbol != "" {
		return c.CurrencySymbol + price
	}
	if c.Currency != "" {
		return price + " " + c.Currency
	}
	return price
}

// Schedule describes the date range and weekly lesson slots.
func (c Course) Schedule() string {
	var parts []string

	start := lo.CoalesceOrEmpty(c.StartDate, c.StartAt)
	end := lo.CoalesceOrEmpty(c.EndDate, c.FinishAt)
	switch {
	case start != "" && end != "":
		parts = append(parts, start+" to "+end)
	case start != "":
		parts = append(parts, "from "+start)
	}

	slots := lo.FilterMap(c.Weekdays, func(w Weekday, _ int) (string, bool) {
		if w.WeekDay == "" {
			return "", false
		}
		if w.StartTime == "" {
			return w.WeekDay, true
		}
		return fmt.Sprintf("%s %s-%s", w.WeekDay, w.StartTime, w.FinishTime), true
	})
	if len(slots) > 0 {
		parts = append(parts, strings.Join(slots, ", "))
	}

	return strings.Join(parts, " | ")
}

// FreePlaceCount prefers the live free_places_count over the cached free_places.
func (c Course) FreePlaceCount() int {
	if c.FreePlacesCount != nil {
		return *c.FreePlacesCount
	}
	return c.FreePlaces
}

// PlacesLabel summarises capacity, e.g. "3 of 12 places free".
func (c Course) PlacesLabel() string {
	free := c.FreePlaceCount()
	if free <= 0 {
		return "fully booked"
	}
	if c.MaxParticipants > 0 {
		return fmt.Sprintf("%d of %d places free", free, c.MaxParticipants)
	}
	if free == 1 {
		return "1 place free"
	}
	return fmt.Sprintf("%d places free", free)
}

// BookingURL returns the checkout link, or the course page if there is none.
func (c Course) BookingURL() string {
	return lo.CoalesceOrEmpty(c.CheckoutURL, c.WebURL)
}

// Card builds the display summary for c.
func (c Course) Card() Card {
	subtitle := lo.Compact([]string{c.Level, c.Format, c.LocationCity})
	return Card{
		ID:       c.ID,
		Title:    c.Title,
		Subtitle: strings.Join(subtitle, " · "),
		Price:    c.PriceLabel(),
		Schedule: c.Schedule(),
		Places:   c.PlacesLabel(),
		BookURL:  c.BookingURL(),
	}
}

// Cards converts an ordered course list into cards, preserving order.
func Cards(courses []Course) []Card {
	return lo.Map(courses, func(c Course, _ int) Card {
		return c.Card()
	})
}

// Pages splits courses into carousel pages of at most perPage cards.
// A non-positive perPage uses DefaultPageSize.
func Pages(courses []Course, perPage int) [][]Course {
	if len(courses) == 0 {
		return nil
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return lo.Chunk(courses, perPage)
}
