package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/dto"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/token"
	"github.com/MeetupServices/meetup-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	issuer *token.Issuer
	store  *token.Store
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, issuer *token.Issuer, store *token.Store, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer, store: store, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"required"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := user.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !user.IsRegistrable(role) {
		httperr.BadRequest(c, "invalid_role", "Role must be student or teacher.")
		return
	}

	username := strings.TrimSpace(req.Username)

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "username_taken", "Username already exists.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         string(role),
	}

	if err := h.db.Create(&u).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create account.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	c.JSON(http.StatusCreated, dto.FromUser(&u))
}

func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var u models.User
	if err := h.db.Where("username = ?", req.Username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Wrong username or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not load account.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong username or password.")
		return
	}

	access, err := h.issuer.AccessToken(&u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	refresh, jti, ttl, err := h.issuer.RefreshToken(&u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	if err := h.store.Save(c.Request.Context(), jti, u.ID, ttl); err != nil {
		httperr.Internal(c, "failed_to_store_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

func (h *AuthHandler) TokenRefresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	claims, err := h.issuer.ParseRefresh(req.Refresh)
	if err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	if err := h.store.Validate(c.Request.Context(), claims.ID); err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	// Reload the account so a role change shows up in the new token.
	var u models.User
	if err := h.db.First(&u, claims.UserID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Account no longer exists.")
		return
	}

	access, err := h.issuer.AccessToken(&u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
