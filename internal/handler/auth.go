package handler

import (
	"net/http"
	"strings"
	"time"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler owns the register/login/session endpoints.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 2
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// ---------- Register ----------

type registerReq struct {
	Name        string `json:"name" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD, optional
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
			return
		}
		dateOfBirth = &t
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query users")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:        util.NormalizeName(req.Name),
		LastName:    util.NormalizeName(req.LastName),
		Email:       req.Email,
		Password:    hash,
		DateOfBirth: dateOfBirth,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	util.Token(c, token, "Registered successfully")
}

// ---------- Login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	if !util.CheckPassword(req.Password, user.Password) {
		util.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	util.Token(c, token, "Logged in successfully")
}

// Logout is a no-op with pure bearer tokens: nothing is stored server-side,
// the client just drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	util.Success(c, nil, "Logged out successfully")
}

// ---------- Refresh ----------

// RefreshToken issues a fresh token with a renewed expiration window. It does
// its own header parsing so an expired-but-well-formed header still gets a
// precise error instead of the generic middleware message.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		util.Error(c, http.StatusUnauthorized, "Authorization header missing or malformed")
		return
	}

	email := util.VerifySubject(h.JWTSecret, h.Issuer, strings.TrimPrefix(authHeader, "Bearer "))
	if email == "" {
		util.Error(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	util.Token(c, token, "Token refreshed successfully")
}

// ---------- Verify password ----------

type verifyPasswordReq struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword re-checks the session user's password, used as step-up
// confirmation before sensitive actions. Requires the auth middleware.
func (h *AuthHandler) VerifyPassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req verifyPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !util.CheckPassword(req.Password, user.Password) {
		util.Error(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	util.Success(c, nil, "Password verified")
}
