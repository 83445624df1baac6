package model

import "time"

// Postcard 行程中的一条记录，带文字、坐标和照片
type Postcard struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TripID     uint64    `gorm:"not null;index" json:"tripId"`
	Title      string    `gorm:"not null;size:100" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Photos     []string  `gorm:"serializer:json" json:"photos"`
	Thumbnails []string  `gorm:"serializer:json" json:"thumbnails"`
	Revision   uint      `gorm:"default:0" json:"revision"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
