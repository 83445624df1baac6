package v1

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pratikkarwade30/postcard-journey/api/v1/request"
	"github.com/pratikkarwade30/postcard-journey/api/v1/response"
	"github.com/pratikkarwade30/postcard-journey/internal/cache"
	"github.com/pratikkarwade30/postcard-journey/internal/metrics"
	"github.com/pratikkarwade30/postcard-journey/internal/validator"
	"github.com/pratikkarwade30/postcard-journey/service"
)

// UserAPI exposes HTTP handlers for registration/login, the follow graph and
// profile picture flows.
type UserAPI struct {
	users   *service.UserService
	follows *service.FollowService
	feed    *cache.FeedCache
}

// NewUserAPI wires the service layer into the HTTP handlers. feed may be nil
// when no cache is configured.
func NewUserAPI(users *service.UserService, follows *service.FollowService, feed *cache.FeedCache) *UserAPI {
	return &UserAPI{users: users, follows: follows, feed: feed}
}

// Register handles new account creation.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRegister("bad_request")
		c.JSON(http.StatusBadRequest, validator.FieldErrors(err))
		return
	}

	user, token, err := u.users.Register(req.DisplayName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			metrics.IncRegister("duplicate_email")
			c.JSON(http.StatusBadRequest, gin.H{"email": "Email already registered"})
			return
		}
		metrics.IncRegister("internal_error")
		internalError(c, "register", err)
		return
	}

	metrics.IncRegister("success")
	view := response.NewAccountView(user, []uint64{user.ID})
	c.JSON(http.StatusOK, response.NewAuthResponse(view, token))
}

// Login validates credentials and returns a session token. The two failure
// shapes deliberately match what clients already parse.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		c.JSON(http.StatusBadRequest, validator.FieldErrors(err))
		return
	}

	user, token, err := u.users.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			metrics.IncLogin("not_found")
			c.JSON(http.StatusNotFound, gin.H{"email": "User not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.IncLogin("unauthorized")
			c.JSON(http.StatusBadRequest, gin.H{"password": "Incorrect password"})
		default:
			metrics.IncLogin("internal_error")
			internalError(c, "login", err)
		}
		return
	}

	following, err := u.follows.Following(user.ID)
	if err != nil {
		metrics.IncLogin("internal_error")
		internalError(c, "login", err)
		return
	}

	metrics.IncLogin("success")
	view := response.NewAccountView(user, following)
	c.JSON(http.StatusOK, response.NewAuthResponse(view, token))
}

// Current returns the identity asserted by the presented token.
func (u *UserAPI) Current(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	user, err := u.users.Get(id)
	if err != nil {
		internalError(c, "current", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"displayName": user.DisplayName,
		"email":       user.Email,
	})
}

// Follow adds the target account to the caller's follow-set.
func (u *UserAPI) Follow(c *gin.Context) {
	actorID, ok := accountID(c)
	if !ok {
		return
	}
	targetID, ok := pathUserID(c)
	if !ok {
		metrics.IncFollow("follow", "bad_request")
		return
	}

	actor, following, err := u.follows.Follow(actorID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			metrics.IncFollow("follow", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrAlreadyFollowing):
			metrics.IncFollow("follow", "duplicate")
			c.JSON(http.StatusBadRequest, "Already following that user")
		default:
			metrics.IncFollow("follow", "internal_error")
			internalError(c, "follow", err)
		}
		return
	}

	metrics.IncFollow("follow", "success")
	c.JSON(http.StatusOK, response.NewAccountView(actor, following))
}

// Unfollow removes the target account from the caller's follow-set.
func (u *UserAPI) Unfollow(c *gin.Context) {
	actorID, ok := accountID(c)
	if !ok {
		return
	}
	targetID, ok := pathUserID(c)
	if !ok {
		metrics.IncFollow("unfollow", "bad_request")
		return
	}

	actor, following, err := u.follows.Unfollow(actorID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			metrics.IncFollow("unfollow", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrNotFollowing):
			metrics.IncFollow("unfollow", "not_following")
			c.JSON(http.StatusBadRequest, "Not yet following that user")
		default:
			metrics.IncFollow("unfollow", "internal_error")
			internalError(c, "unfollow", err)
		}
		return
	}

	metrics.IncFollow("unfollow", "success")
	c.JSON(http.StatusOK, response.NewAccountView(actor, following))
}

// Follows resolves the caller's follow-set to full account records.
func (u *UserAPI) Follows(c *gin.Context) {
	actorID, ok := accountID(c)
	if !ok {
		return
	}

	followed, err := u.follows.ListFollowed(actorID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "follows", err)
		return
	}

	views := make(map[uint64]response.AccountView, len(followed))
	for id, user := range followed {
		following, err := u.follows.Following(id)
		if err != nil {
			internalError(c, "follows", err)
			return
		}
		views[id] = response.NewAccountView(user, following)
	}
	c.JSON(http.StatusOK, response.FollowedResponse{FollowedUsers: views})
}

// ReplaceProfileImage stores a new picture location and best-effort deletes the
// previous object.
func (u *UserAPI) ReplaceProfileImage(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req request.ProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validator.FieldErrors(err))
		return
	}

	user, err := u.users.ReplaceProfilePic(id, req.URL)
	if err != nil {
		internalError(c, "profile image", err)
		return
	}
	u.invalidateFeed(id)

	following, err := u.follows.Following(id)
	if err != nil {
		internalError(c, "profile image", err)
		return
	}
	c.JSON(http.StatusOK, response.NewAccountView(user, following))
}

// RemoveProfileImage deletes the current picture object and clears the field.
func (u *UserAPI) RemoveProfileImage(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	user, err := u.users.RemoveProfilePic(id)
	if err != nil {
		internalError(c, "profile image", err)
		return
	}
	u.invalidateFeed(id)

	following, err := u.follows.Following(id)
	if err != nil {
		internalError(c, "profile image", err)
		return
	}
	c.JSON(http.StatusOK, response.NewAccountView(user, following))
}

func (u *UserAPI) invalidateFeed(id uint64) {
	if u.feed == nil {
		return
	}
	if err := u.feed.Invalidate(id); err != nil {
		log.Printf("feed cache invalidate failed: id=%d err=%v", id, err)
	}
}

// accountID reads the authenticated account id placed by the auth middleware.
func accountID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		c.Abort()
		return 0, false
	}
	id, ok := v.(uint64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return 0, false
	}
	return id, true
}

func pathUserID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// internalError logs the cause and answers with a generic fault; storage and
// signing failures never leak detail to the caller.
func internalError(c *gin.Context, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
