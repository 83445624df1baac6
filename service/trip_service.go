package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/model"
)

// TripService is the read side: it joins a traveller's trips and their nested
// postcards into flat collections keyed by id.
type TripService struct {
	users     *dao.UserDAO
	trips     *dao.TripDAO
	postcards *dao.PostcardDAO
}

// NewTripService 创建一个新的 TripService 实例
func NewTripService(users *dao.UserDAO, trips *dao.TripDAO, postcards *dao.PostcardDAO) *TripService {
	return &TripService{users: users, trips: trips, postcards: postcards}
}

// Aggregate fetches the traveller's trips newest-first, then each trip's
// postcards newest-first. A traveller with zero trips yields empty collections,
// not an error. Cost is O(trips + postcards) fetches.
func (s *TripService) Aggregate(travellerID uint64) (*model.User, []model.Trip, map[uint64][]model.Postcard, error) {
	traveller, err := s.users.FindByID(travellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrAccountNotFound
		}
		return nil, nil, nil, err
	}

	trips, err := s.trips.FindByTraveller(travellerID)
	if err != nil {
		return nil, nil, nil, err
	}

	byTrip := make(map[uint64][]model.Postcard, len(trips))
	for _, trip := range trips {
		postcards, err := s.postcards.FindByTrip(trip.ID)
		if err != nil {
			return nil, nil, nil, err
		}
		byTrip[trip.ID] = postcards
	}
	return traveller, trips, byTrip, nil
}
