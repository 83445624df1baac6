package dao

import (
	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/model"
)

type TripDAO struct {
	db *gorm.DB
}

// NewTripDAO 创建一个新的 TripDAO 实例
func NewTripDAO(db *gorm.DB) *TripDAO {
	return &TripDAO{db: db}
}

// CreateTrip 创建行程
func (dao *TripDAO) CreateTrip(trip *model.Trip) error {
	return dao.db.Create(trip).Error
}

// FindByTraveller 查询某旅行者的全部行程，按创建时间倒序
func (dao *TripDAO) FindByTraveller(travellerID uint64) ([]model.Trip, error) {
	var trips []model.Trip
	err := dao.db.Where("traveller_id = ?", travellerID).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}
