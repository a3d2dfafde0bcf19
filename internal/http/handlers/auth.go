package handlers

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL      = time.Hour
	refreshTokenTTL     = 7 * 24 * time.Hour
	refreshCookieName   = "refreshToken"
	refreshCookiePath   = "/api/auth"
	refreshCookieMaxAge = int(refreshTokenTTL / time.Second)
)

// AuthUser is the account payload returned by auth endpoints. Credentials
// and token hashes never leave the handler.
type AuthUser struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
	Role            string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func signAccessToken(userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func issueRefreshToken(c *gin.Context, userID int64) error {
	token := uuid.NewString() + uuid.NewString()
	if _, err := intconfig.DB.Exec(
		"UPDATE customers SET refresh_token_hash = ? WHERE id = ?",
		hashToken(token), userID); err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, refreshCookieMaxAge, refreshCookiePath, "", false, true)
	return nil
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
		SELECT id, name, email, phone, delivery_address, role, password_hash
		FROM customers
		WHERE email = ?
	`, strings.TrimSpace(req.Email)).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.DeliveryAddress, &user.Role, &passwordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "Failed to query account", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	accessToken, err := signAccessToken(user.ID, user.Role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}
	if err := issueRefreshToken(c, user.ID); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to issue refresh token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "Email and a password of at least 6 characters are required", nil)
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(
		"SELECT COUNT(*) FROM customers WHERE email = ?", req.Email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to check account", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusConflict, "Email is already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO customers (name, email, phone, password_hash, role)
		VALUES (?, ?, ?, ?, 'customer')`,
		strings.TrimSpace(req.Name), req.Email, strings.TrimSpace(req.Phone), string(hash))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}
	id, _ := res.LastInsertId()

	accessToken, err := signAccessToken(id, "customer")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}
	if err := issueRefreshToken(c, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to issue refresh token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"accessToken": accessToken,
		"user": AuthUser{
			ID:    id,
			Name:  strings.TrimSpace(req.Name),
			Email: req.Email,
			Phone: strings.TrimSpace(req.Phone),
			Role:  "customer",
		},
	})
}

func loadAuthUser(id int64) (AuthUser, error) {
	var user AuthUser
	err := intconfig.DB.QueryRow(`
		SELECT id, name, email, phone, delivery_address, role
		FROM customers
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.DeliveryAddress, &user.Role)
	return user, err
}

// GET /api/auth/user
func GetCurrentUser(c *gin.Context) {
	ctxUser, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}
	user, err := loadAuthUser(int64(ctxUser.UserID))
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusNotFound, "Account not found", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "Failed to query account", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateCurrentUserRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	DeliveryAddress *string `json:"deliveryAddress"`
}

// PATCH /api/auth/user
func UpdateCurrentUser(c *gin.Context) {
	ctxUser, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}

	var req updateCurrentUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	sets := []string{}
	args := []any{}
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, strings.TrimSpace(*req.Phone))
	}
	if req.DeliveryAddress != nil {
		sets = append(sets, "delivery_address = ?")
		args = append(args, strings.TrimSpace(*req.DeliveryAddress))
	}
	if len(sets) > 0 {
		args = append(args, int64(ctxUser.UserID))
		if _, err := intconfig.DB.Exec(
			"UPDATE customers SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
			RespondError(c, http.StatusInternalServerError, "Failed to update account", err)
			return
		}
	}

	user, err := loadAuthUser(int64(ctxUser.UserID))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to query account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GET /api/auth/token
// Exchanges the refresh cookie for a fresh access token and rotates the
// cookie.
func RefreshAccessToken(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookieName)
	if err != nil || refresh == "" {
		RespondError(c, http.StatusUnauthorized, "Refresh token required", nil)
		return
	}

	var (
		id   int64
		role string
	)
	err = intconfig.DB.QueryRow(
		"SELECT id, role FROM customers WHERE refresh_token_hash = ?",
		hashToken(refresh)).Scan(&id, &role)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusUnauthorized, "Invalid refresh token", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "Failed to query account", err)
		}
		return
	}

	accessToken, err := signAccessToken(id, role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}
	if err := issueRefreshToken(c, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to issue refresh token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// GET /api/auth/logout
func Logout(c *gin.Context) {
	ctxUser, ok := middleware.CurrentUser(c)
	if ok {
		_, _ = intconfig.DB.Exec(
			"UPDATE customers SET refresh_token_hash = '' WHERE id = ?", int64(ctxUser.UserID))
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
