package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/internal/auth"
	"github.com/pratikkarwade30/postcard-journey/internal/storage"
	"github.com/pratikkarwade30/postcard-journey/model"
	"github.com/pratikkarwade30/postcard-journey/utils"
)

// UserService bundles the account DAO, token issuer and object-store collaborator.
type UserService struct {
	users   *dao.UserDAO
	follows *dao.FollowDAO
	issuer  *auth.TokenIssuer
	objects storage.Deleter
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(users *dao.UserDAO, follows *dao.FollowDAO, issuer *auth.TokenIssuer, objects storage.Deleter) *UserService {
	return &UserService{
		users:   users,
		follows: follows,
		issuer:  issuer,
		objects: objects,
	}
}

// Register persists a fresh account after hashing the password and issues a
// session token. The raw password is never stored or logged.
func (s *UserService) Register(displayName, email, password string) (*model.User, string, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.users.CreateUser(user); err != nil {
		if isDuplicateKey(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	// 新账号的关注列表以自己为种子，关注页里能看到自己的行程
	if err := s.follows.Add(user.ID, user.ID); err != nil && !isDuplicateKey(err) {
		return nil, "", err
	}

	token, err := s.issuer.Issue(user.ID, user.DisplayName)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login handles email/password authentication and issues a session token.
// Hash comparison runs in constant time inside bcrypt.
func (s *UserService) Login(email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.DisplayName)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Get 根据 ID 查询账号
func (s *UserService) Get(id uint64) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

// ReplaceProfilePic swaps the stored picture location. The previous object is
// deleted best-effort; a failing object store never blocks the account update.
func (s *UserService) ReplaceProfilePic(id uint64, location string) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.ProfilePic != nil {
		s.deleteObject(*user.ProfilePic)
	}
	if err := s.users.UpdateProfilePic(id, &location); err != nil {
		return nil, err
	}
	user.ProfilePic = &location
	return user, nil
}

// RemoveProfilePic deletes the current picture object and clears the field.
func (s *UserService) RemoveProfilePic(id uint64) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.ProfilePic != nil {
		s.deleteObject(*user.ProfilePic)
	}
	if err := s.users.UpdateProfilePic(id, nil); err != nil {
		return nil, err
	}
	user.ProfilePic = nil
	return user, nil
}

func (s *UserService) deleteObject(location string) {
	bucket, key, err := storage.ParseObjectURL(location)
	if err != nil {
		log.Printf("profile pic URL unparseable, skipping delete: %v", err)
		return
	}
	if err := s.objects.Delete(bucket, key); err != nil {
		log.Printf("profile pic delete failed: bucket=%s key=%s err=%v", bucket, key, err)
	}
}
