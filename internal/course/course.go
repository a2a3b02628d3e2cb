// ABOUTME: Course offer records carried from assistant replies to chat messages
// ABOUTME: Field names follow the course-search service's snake_case wire format

package course

// Course is one bookable offering as returned by the course-search service.
// The conversation core never interprets these fields; it only carries them
// from a reply to the message that displays them.
type Course struct {
	ID              int       `json:"course_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Level           string    `json:"level"`
	Status          string    `json:"status"`
	Format          string    `json:"format"`
	TargetGroup     string    `json:"target_group"`
	LocationCity    string    `json:"location_city"`
	Price           string    `json:"price"`
	Currency        string    `json:"currency"`
	CurrencySymbol  string    `json:"currency_symbol"`
	WebURL          string    `json:"web_url,omitempty"`
	CheckoutURL     string    `json:"checkout_url,omitempty"`
	StartAt         string    `json:"start_at,omitempty"`
	StartDate       string    `json:"start_date"`
	FinishAt        string    `json:"finish_at,omitempty"`
	EndDate         string    `json:"end_date"`
	FreePlacesCount *int      `json:"free_places_count,omitempty"`
	FreePlaces      int       `json:"free_places"`
	MaxParticipants int       `json:"max_participants"`
	MinParticipants int       `json:"min_participants"`
	LocationID      int       `json:"location_id"`
	Category        string    `json:"category"`
	CourseType      string    `json:"course_type,omitempty"`
	Frequency       string    `json:"frequency,omitempty"`
	LessonCount     string    `json:"lesson_count,omitempty"`
	LessonDuration  string    `json:"lesson_duration,omitempty"`
	BooksIncluded   *bool     `json:"books_included,omitempty"`
	ExamFees        string    `json:"exam_fees,omitempty"`
	Teachers        []Teacher `json:"teachers,omitempty"`
	Weekdays        []Weekday `json:"course_weekdays,omitempty"`
	CountryCode     string    `json:"country_code,omitempty"`
	CountryName     string    `json:"country_name,omitempty"`
	StatusText      string    `json:"status_text,omitempty"`
	DeadlineDate    string    `json:"deadline_date,omitempty"`
	TimesOfDay      []string  `json:"times_of_day,omitempty"`
}

// Teacher is a course instructor.
type Teacher struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// Weekday is one recurring lesson slot.
type Weekday struct {
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
	WeekDay    string `json:"week_day"`
}

// Location is a school site offering courses.
type Location struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Country  Country `json:"country"`
}

// Country identifies the country of a Location.
type Country struct {
	ID          int    `json:"id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
}

// SearchParams is the body of a course search request.
type SearchParams struct {
	Query      string `json:"query"`
	LocationID *int   `json:"location_id,omitempty"`
	MaxPages   *int   `json:"max_pages,omitempty"`
}
