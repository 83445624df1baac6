package dao

import (
	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/model"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新账号
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// FindByEmail 根据邮箱查询账号
func (dao *UserDAO) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据 ID 查询账号
func (dao *UserDAO) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfilePic 更新头像地址，nil 表示清空
func (dao *UserDAO) UpdateProfilePic(id uint64, location *string) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).Update("profile_pic", location).Error
}
