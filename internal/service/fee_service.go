package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/zydovvn/backend/internal/cache"
	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppliedVoucher 命中的优惠券摘要
type AppliedVoucher struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Type string `json:"type"`
}

// FeeQuote 发布费计算结果
type FeeQuote struct {
	FeeBefore      models.Money    `json:"fee_before"`                // 折前费用
	Discount       models.Money    `json:"discount"`                  // 减免金额
	FeeAfter       models.Money    `json:"fee_after"`                 // 实收费用
	Source         string          `json:"source"`                    // 来源（FREE_QUOTA/VOUCHER/NONE）
	AppliedVoucher *AppliedVoucher `json:"applied_voucher,omitempty"` // 命中的优惠券
	Error          string          `json:"error,omitempty"`           // 优惠券校验失败原因
	FreeLeft       int             `json:"free_left"`                 // 剩余免费额度
	ListingFee     models.Money    `json:"listing_fee"`               // 当前标准发布费
}

// SellerStats 卖家发布统计
type SellerStats struct {
	TotalPosts    int `json:"total_posts"`
	FreeQuotaUsed int `json:"free_quota_used"`
	FreeLeft      int `json:"free_left"`
	FreeLimit     int `json:"free_limit"`
}

// FeeServiceOptions 发布费服务配置
type FeeServiceOptions struct {
	FreeLimit     int          // 免费额度条数
	DefaultAmount models.Money // 无生效费率时的兜底金额
	CacheSeconds  int          // 当前费率缓存时长
}

// FeeService 发布费计算与核销服务
type FeeService struct {
	feeRepo        repository.ListingFeeRepository
	counterRepo    repository.SellerCounterRepository
	voucherRepo    repository.VoucherRepository
	issuanceRepo   repository.VoucherIssuanceRepository
	redemptionRepo repository.VoucherRedemptionRepository
	freeLimit      int
	defaultAmount  models.Money
	cacheSeconds   int
}

// NewFeeService 创建发布费服务
func NewFeeService(
	feeRepo repository.ListingFeeRepository,
	counterRepo repository.SellerCounterRepository,
	voucherRepo repository.VoucherRepository,
	issuanceRepo repository.VoucherIssuanceRepository,
	redemptionRepo repository.VoucherRedemptionRepository,
	options FeeServiceOptions,
) *FeeService {
	freeLimit := options.FreeLimit
	if freeLimit <= 0 {
		freeLimit = constants.FreeQuotaLimit
	}
	return &FeeService{
		feeRepo:        feeRepo,
		counterRepo:    counterRepo,
		voucherRepo:    voucherRepo,
		issuanceRepo:   issuanceRepo,
		redemptionRepo: redemptionRepo,
		freeLimit:      freeLimit,
		defaultAmount:  options.DefaultAmount,
		cacheSeconds:   options.CacheSeconds,
	}
}

// FreeLimit 返回免费额度条数
func (s *FeeService) FreeLimit() int {
	return s.freeLimit
}

// ComputeFee 计算一次发布的费用预览（只读，不落库）
func (s *FeeService) ComputeFee(sellerID, categoryID uint, voucherCode string) (*FeeQuote, error) {
	if err := s.counterRepo.EnsureExists(sellerID); err != nil {
		return nil, err
	}
	counter, err := s.counterRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		counter = &models.SellerCounter{SellerID: sellerID}
	}
	return s.buildQuote(nil, counter, sellerID, categoryID, voucherCode)
}

// Redeem 在发布事务内核销费用（免费额度或优惠券），并累加计数。
// 业务校验失败不会中断事务：返回 NONE 来源 + 全额费用，仅存储错误向上传播。
func (s *FeeService) Redeem(tx *gorm.DB, sellerID, categoryID uint, voucherCode string, postID uint) (*FeeQuote, error) {
	counterRepo := s.counterRepo.WithTx(tx)
	if err := counterRepo.EnsureExists(sellerID); err != nil {
		return nil, err
	}
	counter, err := counterRepo.GetBySellerIDForUpdate(sellerID)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, ErrCounterMissing
	}

	// 锁内复核免费额度（预览后额度可能已被并发发布用掉）
	if counter.FreeQuotaUsed < s.freeLimit {
		if err := counterRepo.Bump(sellerID, true); err != nil {
			return nil, err
		}
		listingFee, err := s.currentFeeAmount(tx)
		if err != nil {
			return nil, err
		}
		freeLeft := s.freeLimit - counter.FreeQuotaUsed - 1
		if freeLeft < 0 {
			freeLeft = 0
		}
		return &FeeQuote{
			Source:     constants.FeeSourceFreeQuota,
			FreeLeft:   freeLeft,
			ListingFee: listingFee,
		}, nil
	}

	// 不信任调用方的预览结果，锁内重算
	quote, err := s.buildQuote(tx, counter, sellerID, categoryID, voucherCode)
	if err != nil {
		return nil, err
	}

	if quote.Source == constants.FeeSourceVoucher && quote.AppliedVoucher != nil {
		redemption := &models.VoucherRedemption{
			VoucherID:       quote.AppliedVoucher.ID,
			SellerID:        sellerID,
			PostID:          postID,
			FeeBefore:       quote.FeeBefore,
			DiscountApplied: quote.Discount,
			FeeAfter:        quote.FeeAfter,
		}
		if err := s.redemptionRepo.WithTx(tx).CreateIgnoreDuplicate(redemption); err != nil {
			return nil, err
		}
	}

	if err := counterRepo.Bump(sellerID, false); err != nil {
		return nil, err
	}
	return quote, nil
}

// GetCurrentListingFee 获取当前生效的发布费（带缓存）
func (s *FeeService) GetCurrentListingFee() (models.Money, error) {
	return s.currentFeeAmount(nil)
}

// SetListingFee 设置新的发布费：停用旧行、插入新行、失效缓存
func (s *FeeService) SetListingFee(amount models.Money, adminID uint) (*models.ListingFee, error) {
	if amount.Decimal.IsNegative() {
		return nil, ErrListingFeeInvalid
	}

	fee := &models.ListingFee{
		Amount:    amount,
		IsActive:  true,
		CreatedBy: adminID,
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		feeRepo := s.feeRepo.WithTx(tx)
		if err := feeRepo.DeactivateAll(); err != nil {
			return err
		}
		return feeRepo.Create(fee)
	})
	if err != nil {
		return nil, err
	}

	if err := cache.Del(context.Background(), constants.CacheKeyListingFee); err != nil {
		logger.Warnw("listing_fee_cache_invalidate_failed", "error", err)
	}
	return fee, nil
}

// GetSellerStats 获取卖家发布统计
func (s *FeeService) GetSellerStats(sellerID uint) (*SellerStats, error) {
	counter, err := s.counterRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		counter = &models.SellerCounter{SellerID: sellerID}
	}
	freeLeft := s.freeLimit - counter.FreeQuotaUsed
	if freeLeft < 0 {
		freeLeft = 0
	}
	return &SellerStats{
		TotalPosts:    counter.TotalPosts,
		FreeQuotaUsed: counter.FreeQuotaUsed,
		FreeLeft:      freeLeft,
		FreeLimit:     s.freeLimit,
	}, nil
}

// buildQuote 按当前计数与优惠码构建报价；tx 非空时全部读操作走事务
func (s *FeeService) buildQuote(tx *gorm.DB, counter *models.SellerCounter, sellerID, categoryID uint, voucherCode string) (*FeeQuote, error) {
	listingFee, err := s.currentFeeAmount(tx)
	if err != nil {
		return nil, err
	}

	freeLeft := s.freeLimit - counter.FreeQuotaUsed
	if freeLeft < 0 {
		freeLeft = 0
	}

	quote := &FeeQuote{
		Source:     constants.FeeSourceNone,
		FreeLeft:   freeLeft,
		ListingFee: listingFee,
	}

	// 免费额度优先，优惠码直接忽略
	if counter.FreeQuotaUsed < s.freeLimit {
		quote.Source = constants.FeeSourceFreeQuota
		return quote, nil
	}

	quote.FeeBefore = listingFee
	quote.FeeAfter = listingFee

	code := strings.TrimSpace(voucherCode)
	if code == "" {
		return quote, nil
	}

	voucher, err := s.voucherRepoTx(tx).GetByCode(code)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		quote.Error = constants.FeeErrVoucherNotFound
		return quote, nil
	}

	reason, err := s.validateVoucher(tx, voucher, listingFee, categoryID, sellerID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		quote.Error = reason
		return quote, nil
	}

	discount := s.calculateDiscount(voucher, listingFee)
	quote.Discount = discount
	quote.FeeAfter = models.NewMoneyFromDecimal(listingFee.Decimal.Sub(discount.Decimal))
	quote.Source = constants.FeeSourceVoucher
	quote.AppliedVoucher = &AppliedVoucher{
		ID:   voucher.ID,
		Code: voucher.Code,
		Type: voucher.Type,
	}
	return quote, nil
}

// validateVoucher 按固定顺序校验优惠券，返回首个失败原因（空串表示通过）
func (s *FeeService) validateVoucher(tx *gorm.DB, voucher *models.Voucher, feeBefore models.Money, categoryID, sellerID uint) (string, error) {
	if !voucher.IsActive {
		return constants.FeeErrVoucherInactive, nil
	}

	now := time.Now()
	if voucher.StartsAt != nil && now.Before(*voucher.StartsAt) {
		return constants.FeeErrVoucherNotStarted, nil
	}
	if voucher.EndsAt != nil && now.After(*voucher.EndsAt) {
		return constants.FeeErrVoucherExpired, nil
	}

	if voucher.MinFeeAmount.Decimal.GreaterThan(decimal.Zero) &&
		feeBefore.Decimal.LessThan(voucher.MinFeeAmount.Decimal) {
		return constants.FeeErrVoucherMinFee, nil
	}

	// 分类限制仅在两侧都有值时生效
	if voucher.ApplicableCategories != nil && categoryID > 0 {
		if !voucher.ApplicableCategories.Contains(strconv.FormatUint(uint64(categoryID), 10)) {
			return constants.FeeErrVoucherCategory, nil
		}
	}

	if !voucher.IsGlobal {
		issuance, err := s.issuanceRepoTx(tx).Get(voucher.ID, sellerID)
		if err != nil {
			return "", err
		}
		if issuance == nil || issuance.IssuedCount <= 0 {
			return constants.FeeErrVoucherNotIssued, nil
		}
	}

	// 使用次数按核销记录计数，未对优惠券行加锁
	if voucher.MaxUsesGlobal > 0 {
		count, err := s.redemptionRepoTx(tx).CountByVoucher(voucher.ID)
		if err != nil {
			return "", err
		}
		if count >= int64(voucher.MaxUsesGlobal) {
			return constants.FeeErrVoucherGlobalLimit, nil
		}
	}
	if voucher.MaxUsesPerSeller > 0 {
		count, err := s.redemptionRepoTx(tx).CountByVoucherSeller(voucher.ID, sellerID)
		if err != nil {
			return "", err
		}
		if count >= int64(voucher.MaxUsesPerSeller) {
			return constants.FeeErrVoucherSellerLimit, nil
		}
	}

	// FREE_LISTING 仅校验剩余条数，不做扣减
	if voucher.Type == constants.VoucherTypeFreeListing && voucher.FreeCount <= 0 {
		return constants.FeeErrVoucherFreeExhaust, nil
	}

	return "", nil
}

// calculateDiscount 按类型计算减免金额，并收敛到 [0, feeBefore]
func (s *FeeService) calculateDiscount(voucher *models.Voucher, feeBefore models.Money) models.Money {
	var discount decimal.Decimal
	switch voucher.Type {
	case constants.VoucherTypePercent:
		discount = feeBefore.Decimal.Mul(voucher.Value.Decimal).Div(decimal.NewFromInt(100))
	case constants.VoucherTypeAmount:
		discount = voucher.Value.Decimal
	case constants.VoucherTypeFreeListing:
		discount = feeBefore.Decimal
	default:
		discount = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(feeBefore.Decimal) {
		discount = feeBefore.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}

// currentFeeAmount 获取当前费率；事务外读走缓存，事务内直读库
func (s *FeeService) currentFeeAmount(tx *gorm.DB) (models.Money, error) {
	if tx == nil {
		var cached models.ListingFee
		hit, err := cache.GetJSON(context.Background(), constants.CacheKeyListingFee, &cached)
		if err != nil {
			logger.Warnw("listing_fee_cache_read_failed", "error", err)
		}
		if hit {
			return cached.Amount, nil
		}
	}

	fee, err := s.feeRepoTx(tx).GetActive()
	if err != nil {
		return models.Money{}, err
	}
	if fee == nil {
		return s.defaultAmount, nil
	}

	if tx == nil && s.cacheSeconds > 0 {
		ttl := time.Duration(s.cacheSeconds) * time.Second
		if err := cache.SetJSON(context.Background(), constants.CacheKeyListingFee, fee, ttl); err != nil {
			logger.Warnw("listing_fee_cache_write_failed", "error", err)
		}
	}
	return fee.Amount, nil
}

func (s *FeeService) feeRepoTx(tx *gorm.DB) repository.ListingFeeRepository {
	if tx == nil {
		return s.feeRepo
	}
	return s.feeRepo.WithTx(tx)
}

func (s *FeeService) voucherRepoTx(tx *gorm.DB) repository.VoucherRepository {
	if tx == nil {
		return s.voucherRepo
	}
	return s.voucherRepo.WithTx(tx)
}

func (s *FeeService) issuanceRepoTx(tx *gorm.DB) repository.VoucherIssuanceRepository {
	if tx == nil {
		return s.issuanceRepo
	}
	return s.issuanceRepo.WithTx(tx)
}

func (s *FeeService) redemptionRepoTx(tx *gorm.DB) repository.VoucherRedemptionRepository {
	if tx == nil {
		return s.redemptionRepo
	}
	return s.redemptionRepo.WithTx(tx)
}
