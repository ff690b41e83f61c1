package services

import (
	"fmt"
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// GiftCardService sells and redeems stored-value cards. Redemption is
// applied as an order discount, not a tender.
type GiftCardService struct {
	store *repository.Store
	calc  *CalculationService
}

// NewGiftCardService creates a new gift card service
func NewGiftCardService(store *repository.Store, calc *CalculationService) *GiftCardService {
	return &GiftCardService{
		store: store,
		calc:  calc,
	}
}

// Purchase creates an active card with a freshly generated code.
func (s *GiftCardService) Purchase(req *models.PurchaseGiftCardRequest) (*models.GiftCard, error) {
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	card := &models.GiftCard{
		Code:           utils.GenerateGiftCardCode(),
		InitialBalance: utils.Round(req.Amount),
		CurrentBalance: utils.Round(req.Amount),
		Status:         utils.GiftCardStatusActive,
		PurchasedBy:    req.PurchasedBy,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		CreatedAt:      time.Now(),
	}
	return s.store.GiftCards.Create(card), nil
}

// CheckBalance looks up a card by code and reports its usable balance.
func (s *GiftCardService) CheckBalance(code string) (*models.GiftCard, error) {
	card, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}
	if card.Status == utils.GiftCardStatusExpired {
		return nil, utils.NewValidationError("gift card has expired")
	}
	if card.CurrentBalance <= 0 {
		return nil, utils.NewValidationError("gift card has no balance")
	}
	return card, nil
}

// Redeem applies as much of the card's balance as the order's remaining
// tax-inclusive total allows, as an order discount. The card is debited
// first; a redeemed card with nothing left flips to used.
func (s *GiftCardService) Redeem(req *models.RedeemGiftCardRequest) (*models.Order, error) {
	card, err := s.CheckBalance(req.Code)
	if err != nil {
		return nil, err
	}

	order := s.store.Orders.Get(req.OrderID)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	if order.Status == utils.OrderStatusPaid || order.Status == utils.OrderStatusCompleted || order.Status == utils.OrderStatusCancelled {
		return nil, utils.NewValidationError("order is closed")
	}

	amountToUse := utils.Round(utils.Min(card.CurrentBalance, order.Total))
	if amountToUse <= 0 {
		return nil, utils.NewValidationError("order has nothing to redeem against")
	}

	_, err = s.store.GiftCards.Update(card.ID, func(c *models.GiftCard) error {
		if c.CurrentBalance < amountToUse {
			return utils.NewValidationError("gift card balance changed, try again")
		}
		c.CurrentBalance = utils.Round(c.CurrentBalance - amountToUse)
		if c.CurrentBalance <= 0 {
			c.Status = utils.GiftCardStatusUsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.store.UpdateOrder(req.OrderID, func(o *models.Order) error {
		o.Discount = utils.Round(o.Discount + amountToUse)
		o.DiscountReason = fmt.Sprintf("Gift Card: %s", card.Code)
		o.Subtotal = s.calc.Subtotal(o.Items)
		o.Tax, o.Total = s.calc.OrderTotals(o.Subtotal, o.Discount)
		return nil
	})
}

func (s *GiftCardService) findByCode(code string) (*models.GiftCard, error) {
	cards := s.store.GiftCards.Filter(map[string]interface{}{"code": code})
	if len(cards) == 0 {
		return nil, utils.NewNotFoundError("Gift card")
	}
	return cards[0], nil
}
