package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/repository"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	users     *repository.UserRepository
	jwtSecret string
	valid     *validator.Validate
	dev       bool
}

func NewAuthHandler(users *repository.UserRepository, jwtSecret string, dev bool) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		valid:     validator.New(),
		dev:       dev,
	}
}

func (h *AuthHandler) signJWT(sub uint, role models.Role, name string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.jwtSecret))
}

/* ====================== DTOs ====================== */

type RegisterReq struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user principal admin"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func userPayload(u *models.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

/* ====================== Handlers ====================== */

// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := h.valid.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	if _, err := h.users.FindByEmail(req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "User already exists"})
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, err, h.dev)
	}
	u := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.users.Create(u); err != nil {
		return fail(c, err, h.dev)
	}

	token, err := h.signJWT(u.ID, u.Role, u.Name)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload(u),
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := h.valid.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	u, err := h.users.FindByEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	}

	token, err := h.signJWT(u.ID, u.Role, u.Name)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(u),
	})
}

// GET /api/auth/profile
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, _ := identity(c)
	u, err := h.users.FindByID(uid)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": userPayload(u)})
}
