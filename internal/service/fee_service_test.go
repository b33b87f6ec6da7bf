package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newFeeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:fee_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
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

func newFeeTestService(db *gorm.DB) *FeeService {
	return NewFeeService(
		repository.NewListingFeeRepository(db),
		repository.NewSellerCounterRepository(db),
		repository.NewVoucherRepository(db),
		repository.NewVoucherIssuanceRepository(db),
		repository.NewVoucherRedemptionRepository(db),
		FeeServiceOptions{},
	)
}

func seedActiveFee(t *testing.T, db *gorm.DB, amount int64) {
	t.Helper()
	fee := models.ListingFee{
		Amount:   models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		IsActive: true,
	}
	if err := db.Create(&fee).Error; err != nil {
		t.Fatalf("seed listing fee: %v", err)
	}
}

func seedExhaustedCounter(t *testing.T, db *gorm.DB, sellerID uint) {
	t.Helper()
	counter := models.SellerCounter{
		SellerID:      sellerID,
		TotalPosts:    constants.FreeQuotaLimit,
		FreeQuotaUsed: constants.FreeQuotaLimit,
	}
	if err := db.Create(&counter).Error; err != nil {
		t.Fatalf("seed counter: %v", err)
	}
}

func moneyEquals(m models.Money, value int64) bool {
	return m.Decimal.Equal(decimal.NewFromInt(value))
}

func TestComputeFeeFreeQuotaWins(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)

	// 有免费额度时优惠码直接忽略
	quote, err := svc.ComputeFee(1, 0, "SAVE20")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceFreeQuota {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceFreeQuota, quote.Source)
	}
	if quote.FreeLeft != constants.FreeQuotaLimit {
		t.Fatalf("expected free_left %d, got %d", constants.FreeQuotaLimit, quote.FreeLeft)
	}
	if !moneyEquals(quote.FeeAfter, 0) {
		t.Fatalf("expected zero fee_after, got %s", quote.FeeAfter.String())
	}
	if quote.Error != "" {
		t.Fatalf("unexpected error reason: %s", quote.Error)
	}
}

func TestComputeFeePercentVoucher(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

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

	quote, err := svc.ComputeFee(1, 0, "SAVE20")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
	if !moneyEquals(quote.FeeBefore, 10000) {
		t.Fatalf("expected fee_before 10000, got %s", quote.FeeBefore.String())
	}
	if !moneyEquals(quote.Discount, 2000) {
		t.Fatalf("expected discount 2000, got %s", quote.Discount.String())
	}
	if !moneyEquals(quote.FeeAfter, 8000) {
		t.Fatalf("expected fee_after 8000, got %s", quote.FeeAfter.String())
	}
	if quote.AppliedVoucher == nil || quote.AppliedVoucher.Code != "SAVE20" {
		t.Fatalf("expected applied voucher SAVE20, got %+v", quote.AppliedVoucher)
	}
}

func TestComputeFeeAmountVoucherClamped(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	// 减免金额超过费用时收敛到费用本身
	voucher := models.Voucher{
		Code:     "BIGCUT",
		Name:     "Big cut",
		Type:     constants.VoucherTypeAmount,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(99999)),
		IsActive: true,
		IsGlobal: true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "BIGCUT")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if !moneyEquals(quote.Discount, 10000) {
		t.Fatalf("expected discount clamped to 10000, got %s", quote.Discount.String())
	}
	if !moneyEquals(quote.FeeAfter, 0) {
		t.Fatalf("expected fee_after 0, got %s", quote.FeeAfter.String())
	}
}

func TestComputeFeeVoucherNotFound(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	quote, err := svc.ComputeFee(1, 0, "MISSING")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceNone {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceNone, quote.Source)
	}
	if quote.Error != constants.FeeErrVoucherNotFound {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherNotFound, quote.Error)
	}
	if !moneyEquals(quote.FeeAfter, 10000) {
		t.Fatalf("expected full fee 10000, got %s", quote.FeeAfter.String())
	}
}

func TestComputeFeeVoucherExpired(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	ended := time.Now().Add(-time.Hour)
	voucher := models.Voucher{
		Code:     "OLD20",
		Name:     "Expired",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		EndsAt:   &ended,
		IsActive: true,
		IsGlobal: true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "OLD20")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherExpired {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherExpired, quote.Error)
	}
	if quote.Source != constants.FeeSourceNone {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceNone, quote.Source)
	}
	if !moneyEquals(quote.FeeAfter, 10000) {
		t.Fatalf("expected full fee 10000, got %s", quote.FeeAfter.String())
	}
}

func TestComputeFeeVoucherNotStarted(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	starts := time.Now().Add(time.Hour)
	voucher := models.Voucher{
		Code:     "SOON",
		Name:     "Not started",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StartsAt: &starts,
		IsActive: true,
		IsGlobal: true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "SOON")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherNotStarted {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherNotStarted, quote.Error)
	}
}

func TestComputeFeeMinFeeFloor(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	voucher := models.Voucher{
		Code:         "HIGHMIN",
		Name:         "High minimum",
		Type:         constants.VoucherTypePercent,
		Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		MinFeeAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(20000)),
		IsActive:     true,
		IsGlobal:     true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "HIGHMIN")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherMinFee {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherMinFee, quote.Error)
	}
}

func TestComputeFeeCategoryRestriction(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	voucher := models.Voucher{
		Code:                 "CAT2",
		Name:                 "Category limited",
		Type:                 constants.VoucherTypePercent,
		Value:                models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ApplicableCategories: models.StringArray([]string{"2"}),
		IsActive:             true,
		IsGlobal:             true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 1, "CAT2")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherCategory {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherCategory, quote.Error)
	}

	quote, err = svc.ComputeFee(1, 2, "CAT2")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}

	// 未传分类时限制不生效
	quote, err = svc.ComputeFee(1, 0, "CAT2")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s without category, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
}

func TestComputeFeeVoucherNotIssued(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	voucher := models.Voucher{
		Code:     "TARGETED",
		Name:     "Targeted",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		IsActive: true,
		IsGlobal: false,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "TARGETED")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherNotIssued {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherNotIssued, quote.Error)
	}

	issuance := models.VoucherIssuance{VoucherID: voucher.ID, SellerID: 1, IssuedCount: 1}
	if err := db.Create(&issuance).Error; err != nil {
		t.Fatalf("seed issuance: %v", err)
	}

	quote, err = svc.ComputeFee(1, 0, "TARGETED")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s after issuance, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
}

func TestComputeFeeFreeListingVoucher(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	voucher := models.Voucher{
		Code:      "FREEPOST",
		Name:      "Free listing",
		Type:      constants.VoucherTypeFreeListing,
		FreeCount: 0,
		IsActive:  true,
		IsGlobal:  true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	quote, err := svc.ComputeFee(1, 0, "FREEPOST")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherFreeExhaust {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherFreeExhaust, quote.Error)
	}

	if err := db.Model(&models.Voucher{}).Where("id = ?", voucher.ID).Update("free_count", 3).Error; err != nil {
		t.Fatalf("update voucher: %v", err)
	}

	quote, err = svc.ComputeFee(1, 0, "FREEPOST")
	if err != nil {
		t.Fatalf("ComputeFee: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
	if !moneyEquals(quote.Discount, 10000) {
		t.Fatalf("expected full discount 10000, got %s", quote.Discount.String())
	}
	if !moneyEquals(quote.FeeAfter, 0) {
		t.Fatalf("expected fee_after 0, got %s", quote.FeeAfter.String())
	}
}

func TestRedeemFreeQuota(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)

	var quote *FeeQuote
	err := db.Transaction(func(tx *gorm.DB) error {
		var redeemErr error
		quote, redeemErr = svc.Redeem(tx, 1, 0, "SAVE20", 100)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if quote.Source != constants.FeeSourceFreeQuota {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceFreeQuota, quote.Source)
	}
	if quote.FreeLeft != constants.FreeQuotaLimit-1 {
		t.Fatalf("expected free_left %d, got %d", constants.FreeQuotaLimit-1, quote.FreeLeft)
	}

	var counter models.SellerCounter
	if err := db.Where("seller_id = ?", 1).First(&counter).Error; err != nil {
		t.Fatalf("load counter: %v", err)
	}
	if counter.TotalPosts != 1 || counter.FreeQuotaUsed != 1 {
		t.Fatalf("expected counts 1/1, got %d/%d", counter.TotalPosts, counter.FreeQuotaUsed)
	}
}

func TestRedeemVoucherCreatesRedemption(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

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

	var quote *FeeQuote
	err := db.Transaction(func(tx *gorm.DB) error {
		var redeemErr error
		quote, redeemErr = svc.Redeem(tx, 1, 0, "SAVE20", 100)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if quote.Source != constants.FeeSourceVoucher {
		t.Fatalf("expected source %s, got %s (error=%s)", constants.FeeSourceVoucher, quote.Source, quote.Error)
	}
	if !moneyEquals(quote.FeeAfter, 8000) {
		t.Fatalf("expected fee_after 8000, got %s", quote.FeeAfter.String())
	}

	var redemptions []models.VoucherRedemption
	if err := db.Where("voucher_id = ?", voucher.ID).Find(&redemptions).Error; err != nil {
		t.Fatalf("load redemptions: %v", err)
	}
	if len(redemptions) != 1 {
		t.Fatalf("expected 1 redemption, got %d", len(redemptions))
	}
	if redemptions[0].SellerID != 1 || redemptions[0].PostID != 100 {
		t.Fatalf("unexpected redemption row: %+v", redemptions[0])
	}

	// 优惠券路径只累加总发布数，不动免费额度
	var counter models.SellerCounter
	if err := db.Where("seller_id = ?", 1).First(&counter).Error; err != nil {
		t.Fatalf("load counter: %v", err)
	}
	if counter.TotalPosts != constants.FreeQuotaLimit+1 {
		t.Fatalf("expected total_posts %d, got %d", constants.FreeQuotaLimit+1, counter.TotalPosts)
	}
	if counter.FreeQuotaUsed != constants.FreeQuotaLimit {
		t.Fatalf("expected free_quota_used %d, got %d", constants.FreeQuotaLimit, counter.FreeQuotaUsed)
	}
}

func TestRedeemDuplicatePostID(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

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

	for i := 0; i < 2; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, redeemErr := svc.Redeem(tx, 1, 0, "SAVE20", 100)
			return redeemErr
		})
		if err != nil {
			t.Fatalf("Redeem #%d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&models.VoucherRedemption{}).Where("voucher_id = ?", voucher.ID).Count(&count).Error; err != nil {
		t.Fatalf("count redemptions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 redemption for same post, got %d", count)
	}
}

func TestRedeemSellerLimitReached(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)

	voucher := models.Voucher{
		Code:             "ONCE",
		Name:             "Once per seller",
		Type:             constants.VoucherTypePercent,
		Value:            models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		MaxUsesPerSeller: 1,
		IsActive:         true,
		IsGlobal:         true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, redeemErr := svc.Redeem(tx, 1, 0, "ONCE", 100)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("first Redeem: %v", err)
	}

	var quote *FeeQuote
	err = db.Transaction(func(tx *gorm.DB) error {
		var redeemErr error
		quote, redeemErr = svc.Redeem(tx, 1, 0, "ONCE", 101)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("second Redeem: %v", err)
	}
	if quote.Source != constants.FeeSourceNone {
		t.Fatalf("expected source %s, got %s", constants.FeeSourceNone, quote.Source)
	}
	if quote.Error != constants.FeeErrVoucherSellerLimit {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherSellerLimit, quote.Error)
	}
	if !moneyEquals(quote.FeeAfter, 10000) {
		t.Fatalf("expected full fee 10000, got %s", quote.FeeAfter.String())
	}

	// 拒绝路径仍然累计总发布数
	var counter models.SellerCounter
	if err := db.Where("seller_id = ?", 1).First(&counter).Error; err != nil {
		t.Fatalf("load counter: %v", err)
	}
	if counter.TotalPosts != constants.FreeQuotaLimit+2 {
		t.Fatalf("expected total_posts %d, got %d", constants.FreeQuotaLimit+2, counter.TotalPosts)
	}
}

func TestRedeemGlobalLimitReached(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)
	seedExhaustedCounter(t, db, 1)
	seedExhaustedCounter(t, db, 2)

	voucher := models.Voucher{
		Code:          "GLOBAL1",
		Name:          "One use total",
		Type:          constants.VoucherTypeAmount,
		Value:         models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		MaxUsesGlobal: 1,
		IsActive:      true,
		IsGlobal:      true,
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, redeemErr := svc.Redeem(tx, 1, 0, "GLOBAL1", 100)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("first Redeem: %v", err)
	}

	var quote *FeeQuote
	err = db.Transaction(func(tx *gorm.DB) error {
		var redeemErr error
		quote, redeemErr = svc.Redeem(tx, 2, 0, "GLOBAL1", 200)
		return redeemErr
	})
	if err != nil {
		t.Fatalf("second Redeem: %v", err)
	}
	if quote.Error != constants.FeeErrVoucherGlobalLimit {
		t.Fatalf("expected error %s, got %s", constants.FeeErrVoucherGlobalLimit, quote.Error)
	}
}

func TestSetListingFeeRotatesActive(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)
	seedActiveFee(t, db, 10000)

	fee, err := svc.SetListingFee(models.NewMoneyFromDecimal(decimal.NewFromInt(15000)), 1)
	if err != nil {
		t.Fatalf("SetListingFee: %v", err)
	}
	if !moneyEquals(fee.Amount, 15000) {
		t.Fatalf("expected amount 15000, got %s", fee.Amount.String())
	}

	var activeCount int64
	if err := db.Model(&models.ListingFee{}).Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
		t.Fatalf("count active fees: %v", err)
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly 1 active fee, got %d", activeCount)
	}

	amount, err := svc.GetCurrentListingFee()
	if err != nil {
		t.Fatalf("GetCurrentListingFee: %v", err)
	}
	if !moneyEquals(amount, 15000) {
		t.Fatalf("expected current fee 15000, got %s", amount.String())
	}
}

func TestSetListingFeeRejectsNegative(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)

	_, err := svc.SetListingFee(models.NewMoneyFromDecimal(decimal.NewFromInt(-1)), 1)
	if err != ErrListingFeeInvalid {
		t.Fatalf("expected ErrListingFeeInvalid, got %v", err)
	}
}

func TestGetSellerStats(t *testing.T) {
	db := newFeeTestDB(t)
	svc := newFeeTestService(db)

	counter := models.SellerCounter{SellerID: 7, TotalPosts: 8, FreeQuotaUsed: 5}
	if err := db.Create(&counter).Error; err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	stats, err := svc.GetSellerStats(7)
	if err != nil {
		t.Fatalf("GetSellerStats: %v", err)
	}
	if stats.TotalPosts != 8 || stats.FreeQuotaUsed != 5 || stats.FreeLeft != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.FreeLimit != constants.FreeQuotaLimit {
		t.Fatalf("expected free_limit %d, got %d", constants.FreeQuotaLimit, stats.FreeLimit)
	}

	// 未知卖家返回零值统计
	stats, err = svc.GetSellerStats(999)
	if err != nil {
		t.Fatalf("GetSellerStats: %v", err)
	}
	if stats.TotalPosts != 0 || stats.FreeLeft != constants.FreeQuotaLimit {
		t.Fatalf("unexpected stats for unknown seller: %+v", stats)
	}
}
