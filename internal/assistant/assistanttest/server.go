// ABOUTME: Fake course assistant service speaking the real HTTP JSON envelope
// ABOUTME: Backs the fake-assistant binary and end-to-end tests of the chat client

package assistanttest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"

	"github.com/2389/coursechat/internal/assistant"
	"github.com/2389/coursechat/internal/course"
)

// FailTrigger makes the chat endpoint answer success=false when it appears
// in a message.
const FailTrigger = "fail"

// Service is an in-memory assistant. Its zero value is not usable; call New.
type Service struct {
	mu        sync.Mutex
	courses   []course.Course
	locations []course.Location
	requests  []assistant.ChatRequest
	delay     time.Duration
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCourses replaces the built-in catalog.
func WithCourses(courses []course.Course) Option {
	return func(s *Service) { s.courses = courses }
}

// WithDelay makes every chat reply wait d before answering.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithLogger enables request logging through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a Service with the default catalog.
func New(opts ...Option) *Service {
	s := &Service{
		courses:   DefaultCourses(),
		locations: DefaultLocations(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServer starts an httptest server for s. Callers must Close it.
func NewServer(s *Service) *httptest.Server {
	return httptest.NewServer(s.Router())
}

// Requests returns the chat requests received so far.
func (s *Service) Requests() []assistant.ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]assistant.ChatRequest(nil), s.requests...)
}

// Router returns the HTTP routes of the service.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.logger != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Post("/chat/message", s.handleChat)
	r.Route("/courses", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/locations", s.handleLocations)
		r.Get("/placement-tests", s.handlePlacementTests)
		r.Get("/{courseID}", s.handleCourse)
	})
	return r
}

func (s *Service) handleChat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	text := strings.TrimSpace(req.Message)
	lower := strings.ToLower(text)
	switch {
	case text == "":
		writeError(w, http.StatusBadRequest, "message is required")
		return
	case strings.Contains(lower, FailTrigger):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "The assistant could not answer"})
		return
	}

	reply := assistant.ChatReply{AIContent: fmt.Sprintf("turns=%d", len(req.ChatHistory)+1)}
	switch {
	case strings.Contains(lower, "cities") || strings.Contains(lower, "located") || strings.Contains(lower, "locations"):
		names := lo.Map(s.locations, func(l course.Location, _ int) string { return l.Title })
		reply.Message = "We teach in **" + strings.Join(names, ", ") + "**. See https://www.oesterreichinstitut.com/german-courses/ for details."
	default:
		matches := Match(s.snapshotCourses(), text)
		if len(matches) > 0 {
			reply.Message = fmt.Sprintf("I found **%d** matching courses:", len(matches))
			reply.Courses = matches
		} else {
			reply.Message = fmt.Sprintf("You asked: %s\n\nBrowse everything at %s/courses/", text, webshop)
		}
	}

	writeData(w, reply)
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	var params course.SearchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || strings.TrimSpace(params.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	matches := Match(s.snapshotCourses(), params.Query)
	if params.LocationID != nil {
		matches = lo.Filter(matches, func(c course.Course, _ int) bool { return c.LocationID == *params.LocationID })
	}
	if matches == nil {
		matches = []course.Course{}
	}
	writeData(w, matches)
}

func (s *Service) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.locations)
}

func (s *Service) handlePlacementTests(w http.ResponseWriter, r *http.Request) {
	locs := s.locations
	if raw := r.URL.Query().Get("location_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid location_id")
			return
		}
		locs = lo.Filter(locs, func(l course.Location, _ int) bool { return l.ID == id })
	}
	tests := lo.Map(locs, func(l course.Location, _ int) map[string]any {
		return map[string]any{"id": l.ID * 10, "location_id": l.ID, "title": "Placement test " + l.Title}
	})
	writeData(w, tests)
}

func (s *Service) handleCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}
	c, ok := lo.Find(s.snapshotCourses(), func(c course.Course) bool { return c.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	writeData(w, c)
}

func (s *Service) snapshotCourses() []course.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]course.Course(nil), s.courses...)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
