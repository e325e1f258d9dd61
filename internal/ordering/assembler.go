package ordering

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"canteen/internal/apperror"
	"canteen/internal/models"
	"canteen/internal/store"
)

const (
	DefaultTaxPercent    = 5
	DefaultEstimatedTime = 30
)

type CanteenFinder interface {
	FindCanteen(ctx context.Context, id primitive.ObjectID) (models.Canteen, error)
}

type UserFinder interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.Order) error
}

type AssembleInput struct {
	UserID          primitive.ObjectID
	CanteenID       primitive.ObjectID
	Lines           []models.OrderLine
	OrderMode       models.OrderMode
	PaymentMethod   models.PaymentMethod
	SpecialRequests string
	TableNumber     string
	DeliveryAddress string
}

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Final    decimal.Decimal
}

// ComputeTotals applies the single arithmetic policy for every order:
// tax = subtotal * rate with no intermediate rounding, and
// final = subtotal - discount + tax. Discounts are reserved and always zero.
func ComputeTotals(lines []models.OrderLine, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	discount := decimal.Zero
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Final:    subtotal.Sub(discount).Add(tax),
	}
}

// TaxRate converts a whole percentage into a multiplier.
func TaxRate(percent int64) decimal.Decimal {
	return decimal.NewFromInt(percent).Div(decimal.NewFromInt(100))
}

// Assembler turns validated lines into a persisted pending order.
type Assembler struct {
	canteens      CanteenFinder
	users         UserFinder
	orders        OrderWriter
	taxRate       decimal.Decimal
	estimatedTime int
	now           func() time.Time
}

func NewAssembler(canteens CanteenFinder, users UserFinder, orders OrderWriter, taxRate decimal.Decimal, estimatedTime int) *Assembler {
	return &Assembler{
		canteens:      canteens,
		users:         users,
		orders:        orders,
		taxRate:       taxRate,
		estimatedTime: estimatedTime,
		now:           time.Now,
	}
}

func (a *Assembler) Assemble(ctx context.Context, in AssembleInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, apperror.New(apperror.KindInvalidOrder, "at least one item is required")
	}

	canteen, err := a.canteens.FindCanteen(ctx, in.CanteenID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.KindInvalidOrder, "canteen %s does not exist", in.CanteenID.Hex())
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to create order")
	}
	if !canteen.IsActive {
		return nil, apperror.New(apperror.KindInvalidOrder, "%s is not accepting orders", canteen.Name)
	}
	if !canteen.ServiceTypes.Offers(in.OrderMode) {
		return nil, apperror.New(apperror.KindInvalidOrder, "%s does not offer %s orders", canteen.Name, in.OrderMode)
	}

	user, err := a.users.FindUser(ctx, in.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.KindInvalidOrder, "user %s does not exist", in.UserID.Hex())
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to create order")
	}
	if !user.IsActive {
		return nil, apperror.New(apperror.KindInvalidOrder, "user account is inactive")
	}

	deliveryAddress := strings.TrimSpace(in.DeliveryAddress)
	if in.OrderMode == models.OrderModeDelivery && deliveryAddress == "" {
		return nil, apperror.New(apperror.KindInvalidInput, "deliveryAddress is required for delivery orders")
	}

	totals := ComputeTotals(in.Lines, a.taxRate)
	now := a.now()
	order := &models.Order{
		UserID:          in.UserID,
		CanteenID:       canteen.ID,
		CanteenName:     canteen.Name,
		Lines:           in.Lines,
		OrderMode:       in.OrderMode,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		FinalAmount:     totals.Final,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   in.PaymentMethod,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		TableNumber:     strings.TrimSpace(in.TableNumber),
		DeliveryAddress: deliveryAddress,
		EstimatedTime:   a.estimatedTime,
		StatusHistory:   []models.StatusChange{{Status: models.OrderStatusPending, At: now}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := a.orders.InsertOrder(ctx, order); err != nil {
		return nil, apperror.Storage(err, "failed to create order")
	}
	return order, nil
}
