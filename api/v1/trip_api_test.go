package v1

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pratikkarwade30/postcard-journey/model"
)

type tripBody struct {
	ID            uint64 `json:"id"`
	Title         string `json:"title"`
	TravellerID   uint64 `json:"travellerId"`
	TravellerName string `json:"travellerName"`
}

type postcardBody struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	TripID      uint64   `json:"tripId"`
	Photos      []string `json:"photos"`
	Thumbnails  []string `json:"thumbnails"`
	TravellerID uint64   `json:"travellerId"`
}

type aggregateBody struct {
	User      accountBody             `json:"user"`
	Trips     map[string]tripBody     `json:"trips"`
	Postcards map[string]postcardBody `json:"postcards"`
}

func TestAggregateEndpointUnknownUser(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, http.MethodGet, "/api/v1/users/9999/trips", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAggregateEndpointZeroTrips(t *testing.T) {
	b := newTestBackend(t)
	a := b.register(t, "A", "a@x.com")

	w := b.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/trips", a.User.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	body := decodeJSON[aggregateBody](t, w)
	if body.User.ID != a.User.ID {
		t.Errorf("user = %d, want %d", body.User.ID, a.User.ID)
	}
	if body.Trips == nil || len(body.Trips) != 0 {
		t.Errorf("trips = %v, want empty object", body.Trips)
	}
	if body.Postcards == nil || len(body.Postcards) != 0 {
		t.Errorf("postcards = %v, want empty object", body.Postcards)
	}
}

func TestAggregateEndpointDenormalizedFields(t *testing.T) {
	b := newTestBackend(t)
	a := b.register(t, "A", "a@x.com")

	trip := model.Trip{TravellerID: a.User.ID, Title: "Iceland", Description: "ring road"}
	if err := b.db.Create(&trip).Error; err != nil {
		t.Fatalf("create trip: %v", err)
	}
	for _, title := range []string{"Reykjavik", "Vik"} {
		pc := model.Postcard{
			TripID: trip.ID,
			Title:  title,
			Body:   "wish you were here",
			Lat:    64.1,
			Lng:    -21.9,
		}
		if err := b.db.Create(&pc).Error; err != nil {
			t.Fatalf("create postcard: %v", err)
		}
	}

	w := b.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/trips", a.User.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	body := decodeJSON[aggregateBody](t, w)

	if len(body.Trips) != 1 {
		t.Fatalf("trips = %d entries, want 1", len(body.Trips))
	}
	if len(body.Postcards) != 2 {
		t.Fatalf("postcards = %d entries, want 2", len(body.Postcards))
	}

	tripKey := fmt.Sprintf("%d", trip.ID)
	if got := body.Trips[tripKey]; got.TravellerName != "A" {
		t.Errorf("trip travellerName = %q, want A", got.TravellerName)
	}
	for key, pc := range body.Postcards {
		if pc.TravellerID != a.User.ID {
			t.Errorf("postcard %s travellerId = %d, want %d", key, pc.TravellerID, a.User.ID)
		}
		if pc.TripID != trip.ID {
			t.Errorf("postcard %s tripId = %d, want %d", key, pc.TripID, trip.ID)
		}
		if pc.Photos == nil || pc.Thumbnails == nil {
			t.Errorf("postcard %s photos/thumbnails marshalled as null", key)
		}
	}
}

// counterValue reads a single labelled counter from the default registry.
func counterValue(t *testing.T, name, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == status {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestAggregateSuccessCountedOnlyOn200(t *testing.T) {
	b := newTestBackend(t)
	a := b.register(t, "A", "a@x.com")

	const name = "journey_trip_aggregate_requests_total"
	successBefore := counterValue(t, name, "success")
	errBefore := counterValue(t, name, "internal_error")

	if w := b.do(t, http.MethodGet, "/api/v1/users/9999/trips", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := counterValue(t, name, "success"); got != successBefore {
		t.Errorf("success counter moved on a 404: %v -> %v", successBefore, got)
	}

	w := b.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/trips", a.User.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	if got := counterValue(t, name, "success"); got != successBefore+1 {
		t.Errorf("success counter = %v, want %v", got, successBefore+1)
	}
	if got := counterValue(t, name, "internal_error"); got != errBefore {
		t.Errorf("internal_error counter moved on a 200: %v -> %v", errBefore, got)
	}
}

func TestAggregateEndpointHidesPasswordHash(t *testing.T) {
	b := newTestBackend(t)
	a := b.register(t, "A", "a@x.com")

	w := b.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/trips", a.User.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	raw := decodeJSON[map[string]any](t, w)
	user, ok := raw["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing from %v", raw)
	}
	for _, forbidden := range []string{"password", "passwordHash", "PasswordHash"} {
		if _, present := user[forbidden]; present {
			t.Errorf("user projection leaks %q", forbidden)
		}
	}
}
