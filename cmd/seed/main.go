package main

import (
	"fmt"
	"time"

	"github.com/zydovvn/backend/internal/config"
	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi-VN": "Đồ điện tử",
				"en-US": "Electronics",
			}),
			Slug:      "electronics",
			SortOrder: 300,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi-VN": "Xe cộ",
				"en-US": "Vehicles",
			}),
			Slug:      "vehicles",
			SortOrder: 200,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi-VN": "Đồ gia dụng",
				"en-US": "Home Appliances",
			}),
			Slug:      "home-appliances",
			SortOrder: 100,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "vehicles", "home-appliances"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	electronicsID := categoryIDs["electronics"]

	// 添加测试卖家
	sellers := []struct {
		Email       string
		Password    string
		DisplayName string
	}{
		{Email: "seller1@example.com", Password: "seller123", DisplayName: "Nguyễn Văn An"},
		{Email: "seller2@example.com", Password: "seller123", DisplayName: "Trần Thị Bình"},
	}
	for _, seed := range sellers {
		var existing models.User
		if err := models.DB.Where("email = ?", seed.Email).First(&existing).Error; err == nil {
			stdLog.Printf("Seller already exists: %s", seed.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", seed.Email, err)
			continue
		}
		user := models.User{
			Email:        seed.Email,
			PasswordHash: string(hash),
			DisplayName:  seed.DisplayName,
			Locale:       constants.LocaleViVN,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create seller %s: %v", seed.Email, err)
		} else {
			stdLog.Printf("Created seller: %s", seed.Email)
		}
	}

	// 设置标准发布费（10000 VND）
	var activeFee models.ListingFee
	if err := models.DB.Where("is_active = ?", true).First(&activeFee).Error; err != nil {
		fee := models.ListingFee{
			Amount:   models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			IsActive: true,
		}
		if err := models.DB.Create(&fee).Error; err != nil {
			stdLog.Printf("Failed to create listing fee: %v", err)
		} else {
			stdLog.Printf("Created listing fee: %s", fee.Amount.String())
		}
	} else {
		stdLog.Printf("Active listing fee already exists: %s", activeFee.Amount.String())
	}

	// 添加演示优惠券
	now := time.Now()
	saveEnds := now.AddDate(0, 3, 0)
	vouchers := []models.Voucher{
		{
			Code:             "SAVE20",
			Name:             "Giảm 20% phí đăng tin",
			Type:             constants.VoucherTypePercent,
			Value:            models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			MaxUsesGlobal:    1000,
			MaxUsesPerSeller: 3,
			StartsAt:         &now,
			EndsAt:           &saveEnds,
			IsActive:         true,
			IsGlobal:         true,
		},
		{
			Code:             "GIAM5K",
			Name:             "Giảm 5.000đ phí đăng tin",
			Type:             constants.VoucherTypeAmount,
			Value:            models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			MinFeeAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			MaxUsesPerSeller: 1,
			IsActive:         true,
			IsGlobal:         true,
		},
		{
			Code:      "DANGTINFREE",
			Name:      "Miễn phí đăng tin đồ điện tử",
			Type:      constants.VoucherTypeFreeListing,
			FreeCount: 5,
			ApplicableCategories: models.StringArray([]string{
				fmt.Sprintf("%d", electronicsID),
			}),
			IsActive: true,
			IsGlobal: false,
		},
	}
	for _, voucher := range vouchers {
		var existing models.Voucher
		if err := models.DB.Where("code = ?", voucher.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Voucher already exists: %s", voucher.Code)
			continue
		}
		if err := models.DB.Create(&voucher).Error; err != nil {
			stdLog.Printf("Failed to create voucher %s: %v", voucher.Code, err)
		} else {
			stdLog.Printf("Created voucher: %s", voucher.Code)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 2 Sellers (password: seller123)")
	fmt.Println("- 1 Active listing fee (10000 VND)")
	fmt.Println("- 3 Vouchers (SAVE20 / GIAM5K / DANGTINFREE)")
}
