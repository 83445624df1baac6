package model

import "time"

// Trip 旅行日志，属于一个旅行者
type Trip struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TravellerID uint64    `gorm:"not null;index" json:"travellerId"`
	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Revision    uint      `gorm:"default:0" json:"revision"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
