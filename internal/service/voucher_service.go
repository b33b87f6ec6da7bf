package service

import (
	"time"

	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"
)

// VoucherService 卖家侧优惠券查询服务
type VoucherService struct {
	voucherRepo  repository.VoucherRepository
	issuanceRepo repository.VoucherIssuanceRepository
}

// NewVoucherService 创建优惠券查询服务
func NewVoucherService(
	voucherRepo repository.VoucherRepository,
	issuanceRepo repository.VoucherIssuanceRepository,
) *VoucherService {
	return &VoucherService{
		voucherRepo:  voucherRepo,
		issuanceRepo: issuanceRepo,
	}
}

// ListMyVouchers 获取卖家当前可用的优惠券：全员券与定向发放券的并集
func (s *VoucherService) ListMyVouchers(sellerID uint) ([]models.Voucher, error) {
	now := time.Now()

	vouchers, err := s.voucherRepo.ListActiveGlobal(now)
	if err != nil {
		return nil, err
	}

	issuances, err := s.issuanceRepo.ListBySeller(sellerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(vouchers))
	for _, voucher := range vouchers {
		seen[voucher.ID] = struct{}{}
	}

	issuedIDs := make([]uint, 0, len(issuances))
	for _, issuance := range issuances {
		if issuance.IssuedCount <= 0 {
			continue
		}
		if _, ok := seen[issuance.VoucherID]; ok {
			continue
		}
		issuedIDs = append(issuedIDs, issuance.VoucherID)
	}

	issued, err := s.voucherRepo.ListByIDs(issuedIDs)
	if err != nil {
		return nil, err
	}
	for _, voucher := range issued {
		if !voucher.IsActive {
			continue
		}
		if voucher.StartsAt != nil && now.Before(*voucher.StartsAt) {
			continue
		}
		if voucher.EndsAt != nil && now.After(*voucher.EndsAt) {
			continue
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, nil
}
