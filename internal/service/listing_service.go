package service

import (
	"strings"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/queue"
	"github.com/zydovvn/backend/internal/repository"

	"gorm.io/gorm"
)

// ListingService 发布服务
type ListingService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	feeService   *FeeService
	queueClient  *queue.Client
}

// NewListingService 创建发布服务
func NewListingService(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	feeService *FeeService,
	queueClient *queue.Client,
) *ListingService {
	return &ListingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		feeService:   feeService,
		queueClient:  queueClient,
	}
}

// CreateListingInput 创建发布输入
type CreateListingInput struct {
	SellerID    uint
	CategoryID  uint
	Title       string
	Description string
	PriceAmount models.Money
	VoucherCode string
}

// Create 创建发布：插入发布行并在同一事务内核销发布费
func (s *ListingService) Create(input CreateListingInput) (*models.Listing, *FeeQuote, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, ErrListingInvalid
	}
	if input.SellerID == 0 || input.CategoryID == 0 {
		return nil, nil, ErrListingInvalid
	}
	if input.PriceAmount.Decimal.IsNegative() {
		return nil, nil, ErrListingInvalid
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, ErrCategoryNotFound
	}

	var listing *models.Listing
	var quote *FeeQuote
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		listingRepo := s.listingRepo.WithTx(tx)

		listing = &models.Listing{
			SellerID:    input.SellerID,
			CategoryID:  input.CategoryID,
			Title:       title,
			Description: strings.TrimSpace(input.Description),
			PriceAmount: input.PriceAmount,
			Status:      constants.ListingStatusActive,
		}
		if err := listingRepo.Create(listing); err != nil {
			return err
		}

		redeemed, err := s.feeService.Redeem(tx, input.SellerID, input.CategoryID, input.VoucherCode, listing.ID)
		if err != nil {
			return err
		}
		quote = redeemed

		listing.FeeBefore = redeemed.FeeBefore
		listing.FeeDiscount = redeemed.Discount
		listing.FeeAfter = redeemed.FeeAfter
		listing.FeeSource = redeemed.Source
		if redeemed.AppliedVoucher != nil {
			listing.FeeVoucherCode = redeemed.AppliedVoucher.Code
		}
		return listingRepo.Update(listing)
	})
	if err != nil {
		return nil, nil, err
	}

	s.dispatchNotifications(listing, quote)
	return listing, quote, nil
}

// GetByID 获取发布详情
func (s *ListingService) GetByID(id uint) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

// ListBySeller 获取卖家发布列表
func (s *ListingService) ListBySeller(sellerID uint, status string, page, pageSize int) ([]models.Listing, int64, error) {
	return s.listingRepo.List(repository.ListingListFilter{
		SellerID: sellerID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// dispatchNotifications 事务提交后推送站内通知任务（失败只记日志）
func (s *ListingService) dispatchNotifications(listing *models.Listing, quote *FeeQuote) {
	if err := s.queueClient.EnqueueNotificationDispatch(queue.NotificationDispatchPayload{
		SellerID: listing.SellerID,
		Type:     constants.NotificationTypeListingCreated,
		RefID:    listing.ID,
	}); err != nil {
		logger.Warnw("listing_created_notify_enqueue_failed", "listing_id", listing.ID, "error", err)
	}

	if quote != nil && quote.Source == constants.FeeSourceVoucher && quote.AppliedVoucher != nil {
		if err := s.queueClient.EnqueueNotificationDispatch(queue.NotificationDispatchPayload{
			SellerID: listing.SellerID,
			Type:     constants.NotificationTypeVoucherRedeemed,
			RefID:    quote.AppliedVoucher.ID,
		}); err != nil {
			logger.Warnw("voucher_redeemed_notify_enqueue_failed", "listing_id", listing.ID, "error", err)
		}
	}
}
