// ABOUTME: Course lookup and health endpoints of the assistant service
// ABOUTME: Search, detail, locations and placement tests share the chat envelope

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/2389/coursechat/internal/course"
)

// SearchCourses runs a free-text course search.
func (c *Client) SearchCourses(ctx context.Context, params course.SearchParams) ([]course.Course, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	courses, err := call[[]course.Course](ctx, c, "searching courses", http.MethodPost, "/courses/search", nil, params)
	if err != nil {
		return nil, err
	}
	return *courses, nil
}

// GetCourse fetches one course. locationID is optional (zero means unset).
func (c *Client) GetCourse(ctx context.Context, id, locationID int) (*course.Course, error) {
	return call[course.Course](ctx, c, "getting course detail", http.MethodGet,
		"/courses/"+strconv.Itoa(id), locationQuery(locationID), nil)
}

// Locations lists the school sites.
func (c *Client) Locations(ctx context.Context) ([]course.Location, error) {
	locs, err := call[[]course.Location](ctx, c, "getting locations", http.MethodGet, "/courses/locations", nil, nil)
	if err != nil {
		return nil, err
	}
	return *locs, nil
}

// PlacementTests lists placement tests, optionally for one location. The
// payload shape is service-defined and returned undecoded.
func (c *Client) PlacementTests(ctx context.Context, locationID int) ([]json.RawMessage, error) {
	tests, err := call[[]json.RawMessage](ctx, c, "getting placement tests", http.MethodGet,
		"/courses/placement-tests", locationQuery(locationID), nil)
	if err != nil {
		return nil, err
	}
	return *tests, nil
}

// Health reports whether GET /health answered 200.
func (c *Client) Health(ctx context.Context) bool {
	resp, err := c.do(ctx, "checking health", http.MethodGet, "/health", nil, nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func locationQuery(locationID int) url.Values {
	if locationID == 0 {
		return nil
	}
	return url.Values{"location_id": {strconv.Itoa(locationID)}}
}
