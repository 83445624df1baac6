package model

import "time"

// Follow 关注关系（follower 关注 followee）。
// 复合唯一键 idx_follow_pair = (follower_id, followee_id) 保证同一对关系只存在一条，
// 插入本身就是 "add to set if absent" 的原子操作。
type Follow struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FollowerID uint64    `gorm:"not null;index:idx_follow_follower;index:idx_follow_pair,unique" json:"followerId"`
	FolloweeID uint64    `gorm:"not null;index:idx_follow_pair,unique" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Follow) TableName() string { return "follows" }
