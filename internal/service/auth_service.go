package service

import (
	"strings"
	"time"

	"github.com/zydovvn/backend/internal/config"
	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminClaims 管理员 Token 载荷
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SellerClaims 卖家 Token 载荷
type SellerClaims struct {
	SellerID uint   `json:"seller_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService 登录认证服务
type AuthService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	adminJWT  config.JWTConfig
	sellerJWT config.JWTConfig
}

// NewAuthService 创建认证服务
func NewAuthService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	adminJWT config.JWTConfig,
	sellerJWT config.JWTConfig,
) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		adminJWT:  adminJWT,
		sellerJWT: sellerJWT,
	}
}

// AdminLogin 管理员登录，返回签名后的 Token
func (s *AuthService) AdminLogin(username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrLoginInvalid
	}

	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrLoginInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrLoginInvalid
	}

	now := time.Now()
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expireDuration(s.adminJWT.ExpireHours))),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.adminJWT.SecretKey))
	if err != nil {
		return "", nil, err
	}

	if err := s.adminRepo.UpdateLastLogin(admin.ID, now); err != nil {
		logger.Warnw("admin_last_login_update_failed", "admin_id", admin.ID, "error", err)
	}
	return token, admin, nil
}

// SellerLogin 卖家登录，返回签名后的 Token
func (s *AuthService) SellerLogin(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrLoginInvalid
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrLoginInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrLoginInvalid
	}
	if user.Status != constants.UserStatusActive {
		return "", nil, ErrAccountDisabled
	}

	now := time.Now()
	claims := SellerClaims{
		SellerID: user.ID,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expireDuration(s.sellerJWT.ExpireHours))),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.sellerJWT.SecretKey))
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Warnw("seller_last_login_update_failed", "seller_id", user.ID, "error", err)
	}
	return token, user, nil
}

// ParseAdminToken 解析管理员 Token
func (s *AuthService) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.adminJWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrLoginInvalid
	}
	return claims, nil
}

// ParseSellerToken 解析卖家 Token
func (s *AuthService) ParseSellerToken(tokenString string) (*SellerClaims, error) {
	claims := &SellerClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.sellerJWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrLoginInvalid
	}
	return claims, nil
}

func expireDuration(hours int) time.Duration {
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}
