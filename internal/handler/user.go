package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserHandler owns the profile endpoints.
type UserHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
	UploadDir string
}

func NewUserHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int, uploadDir string) *UserHandler {
	if ttlHours <= 0 {
		ttlHours = 2
	}
	return &UserHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
		UploadDir: uploadDir,
	}
}

// userResp is the public projection of a user (no password hash).
type userResp struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	ProfileURL  string     `json:"profileUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:          u.ID,
		Name:        u.Name,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		ProfileURL:  u.ProfileURL,
		CreatedAt:   u.CreatedAt,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// ---------- Read ----------

func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query users")
		return
	}

	items := make([]userResp, 0, len(users))
	for i := range users {
		items = append(items, toUserResp(&users[i]))
	}
	util.Success(c, items, "Users fetched successfully")
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	util.Success(c, toUserResp(&user), "User found")
}

// GetMe returns the authenticated principal (requires the auth middleware).
func (h *UserHandler) GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	util.Success(c, toUserResp(user), "User fetched successfully")
}

// ---------- Update ----------

// updateUserReq has patch semantics: nil fields are left untouched.
type updateUserReq struct {
	Name        *string `json:"name"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	DateOfBirth *string `json:"dateOfBirth"` // YYYY-MM-DD
	ProfileURL  *string `json:"profileUrl"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	credentialsChanged := false

	if req.Name != nil {
		user.Name = util.NormalizeName(*req.Name)
	}
	if req.LastName != nil {
		user.LastName = util.NormalizeName(*req.LastName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != user.Email {
			var count int64
			if err := h.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, "Failed to query users")
				return
			}
			if count > 0 {
				util.Error(c, http.StatusBadRequest, "Email already registered")
				return
			}
			user.Email = email
			credentialsChanged = true
		}
	}
	if req.Password != nil {
		if err := util.ValidatePassword(*req.Password); err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := util.HashPassword(*req.Password)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hash
		credentialsChanged = true
	}
	if req.DateOfBirth != nil {
		t, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
			return
		}
		user.DateOfBirth = &t
	}
	if req.ProfileURL != nil {
		user.ProfileURL = *req.ProfileURL
	}

	if err := h.DB.Save(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	// session subject is the email, so a changed email (or password)
	// invalidates the old token; hand back a fresh one
	if credentialsChanged {
		token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, util.Envelope{
			Success: true,
			Data:    toUserResp(&user),
			Token:   token,
			Message: "User updated successfully",
		})
		return
	}

	util.Success(c, toUserResp(&user), "User updated successfully")
}

// ---------- Profile picture ----------

var extRe = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	file, err := c.FormFile("profileImage")
	if err != nil || file.Size == 0 {
		util.Error(c, http.StatusBadRequest, "File is empty")
		return
	}

	// random name plus a sanitized extension keeps the resolved path inside
	// the upload directory
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extRe.MatchString(ext) {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext
	dest := filepath.Join(h.UploadDir, name)

	// write under a temp name first so no partial file shows up under dest
	tmp := dest + ".tmp"
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to save file")
		return
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		util.Error(c, http.StatusInternalServerError, "Failed to save file")
		return
	}
	if err := os.Chmod(dest, 0o644); err != nil {
		// some filesystems reject chmod; the upload still counts
		log.Printf("chmod %s: %v", dest, err)
	}

	profileURL := "/uploads/" + name
	if err := h.DB.Model(&user).Update("profile_url", profileURL).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	user.ProfileURL = profileURL

	util.Success(c, toUserResp(&user), "Profile picture uploaded successfully")
}

// ---------- Delete ----------

// DeleteUser removes the user and every ledger record it owns.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	if err := h.DB.Select(clause.Associations).Delete(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	util.Success(c, nil, "User deleted successfully")
}
