package dao

import (
	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/model"
)

type PostcardDAO struct {
	db *gorm.DB
}

// NewPostcardDAO 创建一个新的 PostcardDAO 实例
func NewPostcardDAO(db *gorm.DB) *PostcardDAO {
	return &PostcardDAO{db: db}
}

// CreatePostcard 创建明信片
func (dao *PostcardDAO) CreatePostcard(pc *model.Postcard) error {
	return dao.db.Create(pc).Error
}

// FindByTrip 查询某行程的全部明信片，按创建时间倒序
func (dao *PostcardDAO) FindByTrip(tripID uint64) ([]model.Postcard, error) {
	var postcards []model.Postcard
	err := dao.db.Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&postcards).Error
	return postcards, err
}
