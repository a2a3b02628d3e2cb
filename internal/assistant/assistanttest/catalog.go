// ABOUTME: Built-in course catalog served by the fake assistant service
// ABOUTME: A handful of courses across three locations, enough to page a carousel

package assistanttest

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/2389/coursechat/internal/course"
)

const webshop = "https://servuswebshop.oesterreichinstitut.com"

// DefaultLocations are the school sites the fake service knows about.
func DefaultLocations() []course.Location {
	return []course.Location{
		{ID: 1, Title: "Krakow", Location: "ul. Garbarska 7", Country: course.Country{ID: 1, CountryCode: "PL", CountryName: "Poland"}},
		{ID: 2, Title: "Brno", Location: "Moravské nám. 15", Country: course.Country{ID: 2, CountryCode: "CZ", CountryName: "Czech Republic"}},
		{ID: 3, Title: "Vienna", Location: "Am Hof 13", Country: course.Country{ID: 3, CountryCode: "AT", CountryName: "Austria"}},
	}
}

// DefaultCourses returns a fresh copy of the built-in catalog.
func DefaultCourses() []course.Course {
	free := func(n int) *int { return &n }
	return []course.Course{
		sample(101, "German B1 Online Intensive", "B1", "online", "Krakow", 1, "1290", free(4)),
		sample(102, "German B1 Evening", "B1", "offline", "Krakow", 1, "990", free(0)),
		sample(103, "German A2 Online", "A2", "online", "Krakow", 1, "890", free(7)),
		sample(201, "German A1 Classroom", "A1", "offline", "Brno", 2, "7900", free(1)),
		sample(202, "German A1 Weekend", "A1", "offline", "Brno", 2, "6900", nil),
		sample(301, "Exam Preparation ÖSD B2", "B2", "offline", "Vienna", 3, "450", free(9)),
	}
}

func sample(id int, title, level, format, city string, locationID int, price string, freeCount *int) course.Course {
	c := course.Course{
		ID:              id,
		Title:           title,
		Level:           level,
		Status:          "open",
		Format:          format,
		TargetGroup:     "adults",
		LocationCity:    city,
		LocationID:      locationID,
		Price:           price,
		Category:        "german",
		StartDate:       "2026-11-02",
		EndDate:         "2027-01-29",
		FreePlacesCount: freeCount,
		FreePlaces:      3,
		MaxParticipants: 12,
		MinParticipants: 4,
		WebURL:          webshop + "/courses/" + strconv.Itoa(id),
		CheckoutURL:     webshop + "/checkout/" + strconv.Itoa(id),
		Weekdays: []course.Weekday{
			{WeekDay: "Mon", StartTime: "18:00", FinishTime: "19:30"},
			{WeekDay: "Wed", StartTime: "18:00", FinishTime: "19:30"},
		},
	}
	switch city {
	case "Krakow":
		c.Currency, c.CurrencySymbol = "PLN", ""
	case "Brno":
		c.Currency, c.CurrencySymbol = "CZK", ""
	default:
		c.Currency, c.CurrencySymbol = "EUR", "€"
	}
	return c
}

// Match returns the courses whose title, level, format or city contain every
// word of query, ignoring case. Words that match nothing in the catalog are
// ignored so "Krakow - Online B1 Course" still finds the Krakow B1 courses.
func Match(courses []course.Course, query string) []course.Course {
	words := lo.Filter(strings.Fields(strings.ToLower(query)), func(w string, _ int) bool {
		return lo.SomeBy(courses, func(c course.Course) bool { return strings.Contains(haystack(c), w) })
	})
	if len(words) == 0 {
		return nil
	}
	return lo.Filter(courses, func(c course.Course, _ int) bool {
		h := haystack(c)
		return lo.EveryBy(words, func(w string) bool { return strings.Contains(h, w) })
	})
}

func haystack(c course.Course) string {
	return strings.ToLower(strings.Join([]string{c.Title, c.Level, c.Format, c.LocationCity}, " "))
}
