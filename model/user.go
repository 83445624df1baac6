package model

import "time"

// User 旅行者账号模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	DisplayName  string    `gorm:"not null;size:100" json:"displayName"`
	Email        string    `gorm:"unique;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:100" json:"-"` // 忽略JSON序列化
	ProfilePic   *string   `gorm:"size:255" json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
