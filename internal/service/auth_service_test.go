package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/zydovvn/backend/internal/config"
	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthTestService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewUserRepository(db),
		config.JWTConfig{SecretKey: "admin-test-secret-admin-test-secret", ExpireHours: 1},
		config.JWTConfig{SecretKey: "seller-test-secret-seller-test-sec", ExpireHours: 1},
	)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAdminLogin(t *testing.T) {
	db := newAuthTestDB(t)
	svc := newAuthTestService(db)

	admin := models.Admin{Username: "admin", PasswordHash: mustHash(t, "admin123")}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	token, got, err := svc.AdminLogin("admin", "admin123")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if token == "" || got.ID != admin.ID {
		t.Fatalf("unexpected login result: token=%q admin=%+v", token, got)
	}

	claims, err := svc.ParseAdminToken(token)
	if err != nil {
		t.Fatalf("ParseAdminToken: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, err := svc.AdminLogin("admin", "wrong"); err != ErrLoginInvalid {
		t.Fatalf("expected ErrLoginInvalid for wrong password, got %v", err)
	}
	if _, _, err := svc.AdminLogin("missing", "admin123"); err != ErrLoginInvalid {
		t.Fatalf("expected ErrLoginInvalid for unknown admin, got %v", err)
	}
}

func TestSellerLogin(t *testing.T) {
	db := newAuthTestDB(t)
	svc := newAuthTestService(db)

	user := models.User{
		Email:        "seller@example.com",
		PasswordHash: mustHash(t, "seller123"),
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	// 邮箱匹配大小写与空白不敏感
	token, got, err := svc.SellerLogin("  Seller@Example.COM ", "seller123")
	if err != nil {
		t.Fatalf("SellerLogin: %v", err)
	}
	if token == "" || got.ID != user.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, got)
	}

	claims, err := svc.ParseSellerToken(token)
	if err != nil {
		t.Fatalf("ParseSellerToken: %v", err)
	}
	if claims.SellerID != user.ID || claims.Email != "seller@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 管理端密钥无法解析卖家 Token
	if _, err := svc.ParseAdminToken(token); err != ErrLoginInvalid {
		t.Fatalf("expected ErrLoginInvalid for cross-secret parse, got %v", err)
	}
}

func TestSellerLoginDisabledAccount(t *testing.T) {
	db := newAuthTestDB(t)
	svc := newAuthTestService(db)

	user := models.User{
		Email:        "banned@example.com",
		PasswordHash: mustHash(t, "seller123"),
		Status:       constants.UserStatusDisabled,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, _, err := svc.SellerLogin("banned@example.com", "seller123"); err != ErrAccountDisabled {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}
