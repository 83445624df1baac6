package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/internal/auth"
	myvalidator "github.com/pratikkarwade30/postcard-journey/internal/validator"
	"github.com/pratikkarwade30/postcard-journey/middleware"
	"github.com/pratikkarwade30/postcard-journey/model"
	"github.com/pratikkarwade30/postcard-journey/service"
)

var bindingSetupOnce sync.Once

func setupBinding(t *testing.T) {
	t.Helper()
	bindingSetupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			myvalidator.RegisterTagName(v)
			_ = v.RegisterValidation("imageurl", myvalidator.IsImageURL)
		}
	})
}

type testBackend struct {
	db     *gorm.DB
	router *gin.Engine
	issuer *auth.TokenIssuer
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	setupBinding(t)

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

	userDAO := dao.NewUserDAO(db)
	followDAO := dao.NewFollowDAO(db)
	issuer := auth.NewTokenIssuer("test-secret", 24*time.Hour)

	userService := service.NewUserService(userDAO, followDAO, issuer, nopDeleter{})
	followService := service.NewFollowService(userDAO, followDAO)
	tripService := service.NewTripService(userDAO, dao.NewTripDAO(db), dao.NewPostcardDAO(db))

	userAPI := NewUserAPI(userService, followService, nil)
	tripAPI := NewTripAPI(tripService, followService, nil)

	r := gin.New()
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		public.POST("/users/login", userAPI.Login)
		public.GET("/users/:userId/trips", tripAPI.Aggregate)
	}
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(issuer))
	{
		private.GET("/users/current", userAPI.Current)
		private.PUT("/users/:userId/follow", userAPI.Follow)
		private.DELETE("/users/:userId/unfollow", userAPI.Unfollow)
		private.GET("/users/follows", userAPI.Follows)
		private.PUT("/users/profile/image", userAPI.ReplaceProfileImage)
		private.DELETE("/users/profile/image", userAPI.RemoveProfileImage)
	}

	return &testBackend{db: db, router: r, issuer: issuer}
}

type nopDeleter struct{}

func (nopDeleter) Delete(bucket, key string) error { return nil }

func (b *testBackend) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

type accountBody struct {
	ID          uint64   `json:"id"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email"`
	ProfilePic  *string  `json:"profilePic"`
	Following   []uint64 `json:"following"`
}

type authBody struct {
	User    accountBody `json:"user"`
	Success bool        `json:"success"`
	Token   string      `json:"token"`
}

// register creates an account through the HTTP surface and returns the parsed
// response; the token comes back with its "Bearer " prefix, ready to be used as
// an Authorization header.
func (b *testBackend) register(t *testing.T, name, email string) authBody {
	t.Helper()
	w := b.do(t, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"displayName": name,
		"email":       email,
		"password":    "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
	var resp authBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}
