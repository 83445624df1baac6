package v1

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratikkarwade30/postcard-journey/api/v1/response"
	"github.com/pratikkarwade30/postcard-journey/internal/cache"
	"github.com/pratikkarwade30/postcard-journey/internal/metrics"
	"github.com/pratikkarwade30/postcard-journey/service"
)

// TripAPI serves the denormalized trips document for a traveller.
type TripAPI struct {
	trips   *service.TripService
	follows *service.FollowService
	feed    *cache.FeedCache
}

// NewTripAPI wires the aggregator into the HTTP layer. feed may be nil when no
// cache is configured.
func NewTripAPI(trips *service.TripService, follows *service.FollowService, feed *cache.FeedCache) *TripAPI {
	return &TripAPI{trips: trips, follows: follows, feed: feed}
}

// Aggregate returns {user, trips:{id:trip}, postcards:{id:postcard}} for the
// traveller in the path. The document is cached briefly; trips and postcards
// change out-of-band, so expiry is the only consistency mechanism needed here.
func (t *TripAPI) Aggregate(c *gin.Context) {
	travellerID, ok := pathUserID(c)
	if !ok {
		metrics.IncAggregate("bad_request")
		return
	}

	if t.feed != nil {
		if doc, err := t.feed.Get(travellerID); err == nil {
			metrics.IncAggregate("cache_hit")
			c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
			return
		}
	}

	traveller, trips, postcardsByTrip, err := t.trips.Aggregate(travellerID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			metrics.IncAggregate("not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		metrics.IncAggregate("internal_error")
		internalError(c, "trip aggregate", err)
		return
	}

	following, err := t.follows.Following(travellerID)
	if err != nil {
		metrics.IncAggregate("internal_error")
		internalError(c, "trip aggregate", err)
		return
	}

	resp := response.AggregateResponse{
		User:      response.NewAccountView(traveller, following),
		Trips:     make(map[uint64]response.TripView, len(trips)),
		Postcards: make(map[uint64]response.PostcardView),
	}
	for _, trip := range trips {
		resp.Trips[trip.ID] = response.NewTripView(trip, traveller.DisplayName)
		for _, pc := range postcardsByTrip[trip.ID] {
			resp.Postcards[pc.ID] = response.NewPostcardView(pc, traveller.ID)
		}
	}

	doc, err := json.Marshal(resp)
	if err != nil {
		metrics.IncAggregate("internal_error")
		internalError(c, "trip aggregate", err)
		return
	}
	metrics.IncAggregate("success")
	if t.feed != nil {
		if err := t.feed.Set(travellerID, doc); err != nil {
			log.Printf("feed cache set failed: id=%d err=%v", travellerID, err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
