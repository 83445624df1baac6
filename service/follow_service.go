package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/model"
)

// FollowService implements the unidirectional follow graph. The follows table's
// composite unique key carries the no-duplicate invariant, so both mutations are
// single conditional statements instead of read-then-save.
type FollowService struct {
	users   *dao.UserDAO
	follows *dao.FollowDAO
}

// NewFollowService 创建一个新的 FollowService 实例
func NewFollowService(users *dao.UserDAO, follows *dao.FollowDAO) *FollowService {
	return &FollowService{users: users, follows: follows}
}

// Follow adds target to actor's follow-set and returns the updated actor account
// plus its follow-set. Following an already-followed account fails.
func (s *FollowService) Follow(actorID, targetID uint64) (*model.User, []uint64, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.requireUser(targetID); err != nil {
		return nil, nil, err
	}

	if err := s.follows.Add(actorID, targetID); err != nil {
		if isDuplicateKey(err) {
			return nil, nil, ErrAlreadyFollowing
		}
		return nil, nil, err
	}

	ids, err := s.follows.FolloweeIDs(actorID)
	if err != nil {
		return nil, nil, err
	}
	return actor, ids, nil
}

// Unfollow removes target from actor's follow-set. Removing an account that is
// not followed fails.
func (s *FollowService) Unfollow(actorID, targetID uint64) (*model.User, []uint64, error) {
	actor, err := s.requireUser(actorID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.requireUser(targetID); err != nil {
		return nil, nil, err
	}

	removed, err := s.follows.Remove(actorID, targetID)
	if err != nil {
		return nil, nil, err
	}
	if removed == 0 {
		return nil, nil, ErrNotFollowing
	}

	ids, err := s.follows.FolloweeIDs(actorID)
	if err != nil {
		return nil, nil, err
	}
	return actor, ids, nil
}

// ListFollowed resolves every id in the account's follow-set to its full current
// record. Ids that no longer resolve are silently skipped.
func (s *FollowService) ListFollowed(actorID uint64) (map[uint64]*model.User, error) {
	if _, err := s.requireUser(actorID); err != nil {
		return nil, err
	}

	ids, err := s.follows.FolloweeIDs(actorID)
	if err != nil {
		return nil, err
	}

	followed := make(map[uint64]*model.User, len(ids))
	for _, id := range ids {
		user, err := s.users.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		followed[id] = user
	}
	return followed, nil
}

// Following 返回某账号关注的全部账号 ID
func (s *FollowService) Following(actorID uint64) ([]uint64, error) {
	return s.follows.FolloweeIDs(actorID)
}

func (s *FollowService) requireUser(id uint64) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}
