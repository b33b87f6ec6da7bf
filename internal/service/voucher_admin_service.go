package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/shopspring/decimal"
)

// VoucherAdminService 优惠券管理服务
type VoucherAdminService struct {
	voucherRepo    repository.VoucherRepository
	issuanceRepo   repository.VoucherIssuanceRepository
	redemptionRepo repository.VoucherRedemptionRepository
}

// NewVoucherAdminService 创建优惠券管理服务
func NewVoucherAdminService(
	voucherRepo repository.VoucherRepository,
	issuanceRepo repository.VoucherIssuanceRepository,
	redemptionRepo repository.VoucherRedemptionRepository,
) *VoucherAdminService {
	return &VoucherAdminService{
		voucherRepo:    voucherRepo,
		issuanceRepo:   issuanceRepo,
		redemptionRepo: redemptionRepo,
	}
}

// CreateVoucherInput 创建优惠券输入
type CreateVoucherInput struct {
	Code                 string
	Name                 string
	Type                 string
	Value                models.Money
	FreeCount            int
	MaxUsesGlobal        int
	MaxUsesPerSeller     int
	MinFeeAmount         models.Money
	ApplicableCategories []uint
	StartsAt             *time.Time
	EndsAt               *time.Time
	IsActive             *bool
	IsGlobal             *bool
	CreatedBy            uint
}

// UpdateVoucherInput 更新优惠券输入（nil 字段保持不变）
type UpdateVoucherInput struct {
	Name                 *string
	Value                *models.Money
	FreeCount            *int
	MaxUsesGlobal        *int
	MaxUsesPerSeller     *int
	MinFeeAmount         *models.Money
	ApplicableCategories *[]uint
	StartsAt             *time.Time
	EndsAt               *time.Time
	IsActive             *bool
	IsGlobal             *bool
}

// Create 创建优惠券
func (s *VoucherAdminService) Create(input CreateVoucherInput) (*models.Voucher, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrVoucherInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrVoucherInvalid
	}
	voucherType := strings.ToUpper(strings.TrimSpace(input.Type))
	if err := validateVoucherValue(voucherType, input.Value); err != nil {
		return nil, err
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrVoucherInvalid
	}
	if input.FreeCount < 0 || input.MaxUsesGlobal < 0 || input.MaxUsesPerSeller < 0 {
		return nil, ErrVoucherInvalid
	}
	if input.MinFeeAmount.Decimal.IsNegative() {
		return nil, ErrVoucherInvalid
	}

	exist, err := s.voucherRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrVoucherCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	isGlobal := true
	if input.IsGlobal != nil {
		isGlobal = *input.IsGlobal
	}

	voucher := &models.Voucher{
		Code:                 code,
		Name:                 name,
		Type:                 voucherType,
		Value:                input.Value,
		FreeCount:            input.FreeCount,
		MaxUsesGlobal:        input.MaxUsesGlobal,
		MaxUsesPerSeller:     input.MaxUsesPerSeller,
		MinFeeAmount:         input.MinFeeAmount,
		ApplicableCategories: encodeCategoryIDs(input.ApplicableCategories),
		StartsAt:             input.StartsAt,
		EndsAt:               input.EndsAt,
		IsActive:             isActive,
		IsGlobal:             isGlobal,
		CreatedBy:            input.CreatedBy,
	}

	if err := s.voucherRepo.Create(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Update 部分更新优惠券（优惠码与类型不可变更）
func (s *VoucherAdminService) Update(id uint, input UpdateVoucherInput) (*models.Voucher, error) {
	if id == 0 {
		return nil, ErrVoucherInvalid
	}
	existing, err := s.voucherRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVoucherNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrVoucherInvalid
		}
		existing.Name = name
	}
	if input.Value != nil {
		if err := validateVoucherValue(existing.Type, *input.Value); err != nil {
			return nil, err
		}
		existing.Value = *input.Value
	}
	if input.FreeCount != nil {
		if *input.FreeCount < 0 {
			return nil, ErrVoucherInvalid
		}
		existing.FreeCount = *input.FreeCount
	}
	if input.MaxUsesGlobal != nil {
		if *input.MaxUsesGlobal < 0 {
			return nil, ErrVoucherInvalid
		}
		existing.MaxUsesGlobal = *input.MaxUsesGlobal
	}
	if input.MaxUsesPerSeller != nil {
		if *input.MaxUsesPerSeller < 0 {
			return nil, ErrVoucherInvalid
		}
		existing.MaxUsesPerSeller = *input.MaxUsesPerSeller
	}
	if input.MinFeeAmount != nil {
		if input.MinFeeAmount.Decimal.IsNegative() {
			return nil, ErrVoucherInvalid
		}
		existing.MinFeeAmount = *input.MinFeeAmount
	}
	if input.ApplicableCategories != nil {
		existing.ApplicableCategories = encodeCategoryIDs(*input.ApplicableCategories)
	}
	if input.StartsAt != nil {
		existing.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		existing.EndsAt = input.EndsAt
	}
	if existing.StartsAt != nil && existing.EndsAt != nil && existing.EndsAt.Before(*existing.StartsAt) {
		return nil, ErrVoucherInvalid
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	if input.IsGlobal != nil {
		existing.IsGlobal = *input.IsGlobal
	}

	if err := s.voucherRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate 停用优惠券
func (s *VoucherAdminService) Deactivate(id uint) error {
	if id == 0 {
		return ErrVoucherInvalid
	}
	existing, err := s.voucherRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVoucherNotFound
	}
	return s.voucherRepo.Deactivate(id)
}

// Issue 向卖家定向发放优惠券（重复发放时覆盖次数）
func (s *VoucherAdminService) Issue(voucherID, sellerID uint, issuedCount int) (*models.VoucherIssuance, error) {
	if voucherID == 0 || sellerID == 0 || issuedCount <= 0 {
		return nil, ErrVoucherInvalid
	}
	existing, err := s.voucherRepo.GetByID(voucherID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVoucherNotFound
	}

	issuance := &models.VoucherIssuance{
		VoucherID:   voucherID,
		SellerID:    sellerID,
		IssuedCount: issuedCount,
	}
	if err := s.issuanceRepo.Upsert(issuance); err != nil {
		return nil, err
	}
	return issuance, nil
}

// List 获取优惠券列表
func (s *VoucherAdminService) List(filter repository.VoucherListFilter) ([]models.Voucher, int64, error) {
	return s.voucherRepo.List(filter)
}

// Redemptions 获取优惠券核销记录
func (s *VoucherAdminService) Redemptions(voucherID uint, page, pageSize int) ([]models.VoucherRedemption, int64, error) {
	if voucherID == 0 {
		return nil, 0, ErrVoucherInvalid
	}
	existing, err := s.voucherRepo.GetByID(voucherID)
	if err != nil {
		return nil, 0, err
	}
	if existing == nil {
		return nil, 0, ErrVoucherNotFound
	}
	return s.redemptionRepo.ListByVoucher(repository.RedemptionListFilter{
		VoucherID: voucherID,
		Page:      page,
		PageSize:  pageSize,
	})
}

// validateVoucherValue 校验类型与数值组合
func validateVoucherValue(voucherType string, value models.Money) error {
	switch voucherType {
	case constants.VoucherTypePercent:
		if value.Decimal.LessThanOrEqual(decimal.Zero) ||
			value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrVoucherInvalid
		}
	case constants.VoucherTypeAmount:
		if value.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrVoucherInvalid
		}
	case constants.VoucherTypeFreeListing:
		if value.Decimal.IsNegative() {
			return ErrVoucherInvalid
		}
	default:
		return ErrVoucherInvalid
	}
	return nil
}

// encodeCategoryIDs 转换分类限制；空集合表示不限分类
func encodeCategoryIDs(ids []uint) models.StringArray {
	if len(ids) == 0 {
		return nil
	}
	encoded := make(models.StringArray, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		encoded = append(encoded, strconv.FormatUint(uint64(id), 10))
	}
	if len(encoded) == 0 {
		return nil
	}
	return encoded
}
