package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/queue"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newListingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:listing_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Listing{},
		&models.ListingFee{},
		&models.SellerCounter{},
		&models.Voucher{},
		&models.VoucherIssuance{},
		&models.VoucherRedemption{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	models.DB = db
	return db
}

func newListingTestService(t *testing.T, db *gorm.DB) *ListingService {
	t.Helper()
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client: %v", err)
	}
	feeService := newFeeTestService(db)
	return NewListingService(
		repository.NewListingRepository(db),
		repository.NewCategoryRepository(db),
		feeService,
		queueClient,
	)
}

func seedCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := models.Category{
		Slug: slug,
		NameJSON: models.JSON(map[string]interface{}{
			"vi-VN": slug,
			"en-US": slug,
		}),
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return &category
}

func TestCreateListingFreeQuota(t *testing.T) {
	db := newListingTestDB(t)
	svc := newListingTestService(t, db)
	seedActiveFee(t, db, 10000)
	category := seedCategory(t, db, "electronics")

	listing, quote, err := svc.Create(CreateListingInput{
		SellerID:    1,
		CategoryID:  category.ID,
		Title:       "iPhone 13 cũ 99%",
		Description: "Máy đẹp, pin tốt",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(8500000)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.ID == 0 {
		t.Fatal("expected listing persisted")
	}
	if listing.Status != constants.ListingStatusActive {
		t.Fatalf("expected status %s, got %s", constants.ListingStatusActive, listing.Status)
	}
	if quote.Source != constants.FeeSourceFreeQuota {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceFreeQuota, quote.Source)
	}
	if listing.FeeSource != constants.FeeSourceFreeQuota {
		t.Fatalf("expected fee_source persisted, got %s", listing.FeeSource)
	}
	if !listing.FeeAfter.Decimal.IsZero() {
		t.Fatalf("expected zero fee_after, got %s", listing.FeeAfter.String())
	}

	var counter models.SellerCounter
	if err := db.Where("seller_id = ?", 1).First(&counter).Error; err != nil {
		t.Fatalf("load counter: %v", err)
	}
	if counter.TotalPosts != 1 || counter.FreeQuotaUsed != 1 {
		t.Fatalf("expected counts 1/1, got %d/%d", counter.TotalPosts, counter.FreeQuotaUsed)
	}
}

func TestCreateListingWithVoucher(t *testing.T) {
	db := newListingTestDB(t)
	svc := newListingTestService(t, db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)
	category := seedCategory(t, db, "vehicles")

	voucher := models.Voucher{
		Code:     "SAVE20",
		Name:     "Save 20%",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		IsActive: true,
		IsGlobal: true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	listing, quote, err := svc.Create(CreateListingInput{
		SellerID:    1,
		CategoryID:  category.ID,
		Title:       "Honda Wave 2020",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(15000000)),
		VoucherCode: "SAVE20",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
	if listing.FeeVoucherCode != "SAVE20" {
		t.Fatalf("expected voucher code persisted, got %q", listing.FeeVoucherCode)
	}
	if !listing.FeeBefore.Decimal.Equal(decimal.NewFromInt(10000)) ||
		!listing.FeeDiscount.Decimal.Equal(decimal.NewFromInt(2000)) ||
		!listing.FeeAfter.Decimal.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("unexpected fee fields: before=%s discount=%s after=%s",
			listing.FeeBefore.String(), listing.FeeDiscount.String(), listing.FeeAfter.String())
	}

	var redemptionCount int64
	if err := db.Model(&models.VoucherRedemption{}).
		Where("voucher_id = ? AND post_id = ?", voucher.ID, listing.ID).
		Count(&redemptionCount).Error; err != nil {
		t.Fatalf("count redemptions: %v", err)
	}
	if redemptionCount != 1 {
		t.Fatalf("expected 1 redemption bound to listing, got %d", redemptionCount)
	}
}

func TestCreateListingInvalidVoucherStillCharges(t *testing.T) {
	db := newListingTestDB(t)
	svc := newListingTestService(t, db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)
	category := seedCategory(t, db, "home-appliances")

	// 无效优惠码不阻断发布，按全额收费
	listing, quote, err := svc.Create(CreateListingInput{
		SellerID:    1,
		CategoryID:  category.ID,
		Title:       "Tủ lạnh Samsung",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(4000000)),
		VoucherCode: "MISSING",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if quote.Source != constants.FeeSourceNone {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceNone, quote.Source)
	}
	if quote.Error != constants.FeeErrVoucherNotFound {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherNotFound, quote.Error)
	}
	if !listing.FeeAfter.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected full fee 10000, got %s", listing.FeeAfter.String())
	}
	if listing.FeeVoucherCode != "" {
		t.Fatalf("expected no voucher code persisted, got %q", listing.FeeVoucherCode)
	}
}

func TestCreateListingValidation(t *testing.T) {
	db := newListingTestDB(t)
	svc := newListingTestService(t, db)
	category := seedCategory(t, db, "electronics")

	cases := []struct {
		name    string
		input   CreateListingInput
		wantErr error
	}{
		{
			name:    "empty title",
			input:   CreateListingInput{SellerID: 1, CategoryID: category.ID, Title: "   "},
			wantErr: ErrListingInvalid,
		},
		{
			name:    "missing seller",
			input:   CreateListingInput{CategoryID: category.ID, Title: "x"},
			wantErr: ErrListingInvalid,
		},
		{
			name:    "negative price",
			input:   CreateListingInput{SellerID: 1, CategoryID: category.ID, Title: "x", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(-1))},
			wantErr: ErrListingInvalid,
		},
		{
			name:    "unknown category",
			input:   CreateListingInput{SellerID: 1, CategoryID: 999, Title: "x"},
			wantErr: ErrCategoryNotFound,
		},
	}
	for _, tc := range cases {
		if _, _, err := svc.Create(tc.input); err != tc.wantErr {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestListBySeller(t *testing.T) {
	db := newListingTestDB(t)
	svc := newListingTestService(t, db)
	seedActiveFee(t, db, 10000)
	category := seedCategory(t, db, "electronics")

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Create(CreateListingInput{
			SellerID:    1,
			CategoryID:  category.ID,
			Title:       fmt.Sprintf("Listing %d", i+1),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
		}); err != nil {
			t.Fatalf("Create #%d: %v", i+1, err)
		}
	}
	if _, _, err := svc.Create(CreateListingInput{
		SellerID:    2,
		CategoryID:  category.ID,
		Title:       "Other seller",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100000)),
	}); err != nil {
		t.Fatalf("Create other seller: %v", err)
	}

	listings, total, err := svc.ListBySeller(1, "", 1, 2)
	if err != nil {
		t.Fatalf("ListBySeller: %v", err)
	}
	if total != 3 || len(listings) != 2 {
		t.Fatalf("expected total 3 page of 2, got total=%d len=%d", total, len(listings))
	}

	listings, total, err = svc.ListBySeller(1, constants.ListingStatusSold, 1, 10)
	if err != nil {
		t.Fatalf("ListBySeller: %v", err)
	}
	if total != 0 || len(listings) != 0 {
		t.Fatalf("expected no sold listings, got total=%d len=%d", total, len(listings))
	}
}
