package dao

import (
	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/model"
)

type FollowDAO struct {
	db *gorm.DB
}

// NewFollowDAO 创建一个新的 FollowDAO 实例
func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{db: db}
}

// Add 插入一条关注关系。复合唯一键保证重复关注直接失败，
// 不存在读取-修改-写入的竞态窗口。
func (dao *FollowDAO) Add(followerID, followeeID uint64) error {
	return dao.db.Create(&model.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error
}

// Remove 删除关注关系，返回实际删除的行数
func (dao *FollowDAO) Remove(followerID, followeeID uint64) (int64, error) {
	res := dao.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	return res.RowsAffected, res.Error
}

// FolloweeIDs 返回某账号关注的全部账号 ID，按关注时间排序
func (dao *FollowDAO) FolloweeIDs(followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := dao.db.Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at").
		Pluck("followee_id", &ids).Error
	return ids, err
}
