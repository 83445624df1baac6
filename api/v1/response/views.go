// Package response holds the typed projections returned to clients. Every shape
// has a constructor so no handler assembles ad-hoc field-by-field payloads.
package response

import (
	"time"

	"github.com/pratikkarwade30/postcard-journey/model"
)

// AccountView is the public projection of an account. It never carries the
// password hash.
type AccountView struct {
	ID          uint64    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	ProfilePic  *string   `json:"profilePic"`
	Following   []uint64  `json:"following"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewAccountView(u *model.User, following []uint64) AccountView {
	if following == nil {
		following = []uint64{}
	}
	return AccountView{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		ProfilePic:  u.ProfilePic,
		Following:   following,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// TripView carries the traveller's display name so clients don't need a second
// lookup per trip.
type TripView struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TravellerID   uint64    `json:"travellerId"`
	Revision      uint      `json:"revision"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	TravellerName string    `json:"travellerName"`
}

func NewTripView(t model.Trip, travellerName string) TripView {
	return TripView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		TravellerID:   t.TravellerID,
		Revision:      t.Revision,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		TravellerName: travellerName,
	}
}

// PostcardView carries the owning traveller's account id alongside the postcard.
type PostcardView struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	TripID      uint64    `json:"tripId"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Photos      []string  `json:"photos"`
	Thumbnails  []string  `json:"thumbnails"`
	Revision    uint      `json:"revision"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	TravellerID uint64    `json:"travellerId"`
}

func NewPostcardView(p model.Postcard, travellerID uint64) PostcardView {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	thumbnails := p.Thumbnails
	if thumbnails == nil {
		thumbnails = []string{}
	}
	return PostcardView{
		ID:          p.ID,
		Title:       p.Title,
		Body:        p.Body,
		TripID:      p.TripID,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Photos:      photos,
		Thumbnails:  thumbnails,
		Revision:    p.Revision,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		TravellerID: travellerID,
	}
}

// AuthResponse is the register/login success payload.
type AuthResponse struct {
	User    AccountView `json:"user"`
	Success bool        `json:"success"`
	Token   string      `json:"token"`
}

func NewAuthResponse(user AccountView, token string) AuthResponse {
	return AuthResponse{User: user, Success: true, Token: "Bearer " + token}
}

// AggregateResponse is the flattened trips document. Clients rebuild the tree
// via the shared trip ids.
type AggregateResponse struct {
	User      AccountView             `json:"user"`
	Trips     map[uint64]TripView     `json:"trips"`
	Postcards map[uint64]PostcardView `json:"postcards"`
}

// FollowedResponse maps followed account ids to their current records.
type FollowedResponse struct {
	FollowedUsers map[uint64]AccountView `json:"followedUsers"`
}
