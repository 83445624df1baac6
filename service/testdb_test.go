package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/internal/auth"
	"github.com/pratikkarwade30/postcard-journey/model"
)

// newTestDB opens a fresh in-memory database with the same error translation the
// production MySQL setup uses, so duplicate-key detection behaves identically.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Trip{}, &model.Postcard{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db      *gorm.DB
	users   *UserService
	follows *FollowService
	trips   *TripService
	issuer  *auth.TokenIssuer
	deleter *fakeDeleter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	userDAO := dao.NewUserDAO(db)
	followDAO := dao.NewFollowDAO(db)
	issuer := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	deleter := &fakeDeleter{}
	return &testEnv{
		db:      db,
		users:   NewUserService(userDAO, followDAO, issuer, deleter),
		follows: NewFollowService(userDAO, followDAO),
		trips:   NewTripService(userDAO, dao.NewTripDAO(db), dao.NewPostcardDAO(db)),
		issuer:  issuer,
		deleter: deleter,
	}
}

// fakeDeleter records delete calls and can be told to fail.
type fakeDeleter struct {
	calls [][2]string
	err   error
}

func (f *fakeDeleter) Delete(bucket, key string) error {
	f.calls = append(f.calls, [2]string{bucket, key})
	return f.err
}

func registerUser(t *testing.T, env *testEnv, name, email string) *model.User {
	t.Helper()
	user, _, err := env.users.Register(name, email, "secret123")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}
