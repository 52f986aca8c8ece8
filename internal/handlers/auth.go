package handlers

import (
	"errors"
	"net/http"
	"time"

	"newsguard/internal/auth"
	"newsguard/internal/models"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuthHandler serves signup, signin and the session-scoped profile routes
type AuthHandler struct {
	users    *store.Users
	tokens   *auth.TokenManager
	validate *validator.Validate
	log      zerolog.Logger
}

// NewAuthHandler creates the auth handler set
func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    store.NewUsers(db),
		tokens:   tokens,
		validate: validator.New(),
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type signupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
}

type signinRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /auth/signup: creates the account and signs the user
// in immediately.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup payload"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup payload: " + err.Error()})
		return
	}

	now := time.Now()
	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
		LastLogin: &now,
	}
	if err := user.SetPassword(req.Password); err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.users.Create(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already registered"})
			return
		}
		writeError(c, h.log, err)
		return
	}

	h.respondWithToken(c, &user)
}

// Signin handles POST /auth/signin: accepts username or email plus
// password.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.users.GetByLogin(req.Username)
	if err != nil || !user.VerifyPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	if err := h.users.TouchLastLogin(user.ID); err != nil {
		h.log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to stamp last login")
	}

	h.respondWithToken(c, user)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(identity.User))
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout is a
// client-side discard.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out", "success": true})
}

type profileUpdateRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
}

// UpdateProfile handles PUT /auth/profile: partial update of the
// session-scoped profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.ProfilePhoto != nil {
		fields["profile_photo"] = *req.ProfilePhoto
	}

	if err := h.users.Update(identity.User.ID, fields); err != nil {
		writeError(c, h.log, err)
		return
	}

	user, err := h.users.GetByID(identity.User.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user *models.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_, adminErr := h.users.AdminFor(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserResponse(user),
		"is_admin":     adminErr == nil,
	})
}
