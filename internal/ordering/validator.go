package ordering

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"canteen/internal/apperror"
	"canteen/internal/models"
	"canteen/internal/store"
)

const lookupConcurrency = 4

// LineRequest is one requested cart line as submitted by the client.
type LineRequest struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

type MenuItemFinder interface {
	FindMenuItem(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error)
}

// PriceValidator resolves requested lines against the catalog and captures
// the current unit price of each item. It never writes.
type PriceValidator struct {
	catalog MenuItemFinder
}

func NewPriceValidator(catalog MenuItemFinder) *PriceValidator {
	return &PriceValidator{catalog: catalog}
}

// Validate fails the whole request on the first invalid line (in request
// order). Malformed identifiers are reported as InvalidInput, unknown items
// as NotFound, and unavailable items or items from another canteen as
// InvalidOrder.
func (v *PriceValidator) Validate(ctx context.Context, canteenID primitive.ObjectID, lines []LineRequest) ([]models.OrderLine, error) {
	if len(lines) == 0 {
		return nil, apperror.New(apperror.KindInvalidOrder, "at least one item is required")
	}

	ids := make([]primitive.ObjectID, len(lines))
	for i, line := range lines {
		raw := strings.TrimSpace(line.MenuItemID)
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, apperror.New(apperror.KindInvalidInput,
				"Invalid menu item ID: %q. Expected 24-character hex string.", raw)
		}
		if line.Quantity <= 0 {
			return nil, apperror.New(apperror.KindInvalidInput, "quantity must be greater than zero")
		}
		ids[i] = id
	}

	items := make([]models.MenuItem, len(lines))
	errs := make([]error, len(lines))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i := range lines {
		g.Go(func() error {
			items[i], errs[i] = v.catalog.FindMenuItem(ctx, ids[i])
			return nil
		})
	}
	_ = g.Wait()

	validated := make([]models.OrderLine, 0, len(lines))
	for i, line := range lines {
		if err := errs[i]; err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperror.New(apperror.KindNotFound, "Menu item not found: %s", ids[i].Hex())
			}
			return nil, apperror.Storage(err, "failed to validate menu items")
		}
		item := items[i]
		if !item.IsAvailable {
			return nil, apperror.New(apperror.KindInvalidOrder, "%s is currently unavailable", item.Name)
		}
		if item.CanteenID != canteenID {
			return nil, apperror.New(apperror.KindInvalidOrder, "%s is not served by this canteen", item.Name)
		}
		validated = append(validated, models.OrderLine{
			MenuItemID:          item.ID,
			Name:                item.Name,
			Quantity:            line.Quantity,
			UnitPrice:           item.Price,
			SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
		})
	}
	return validated, nil
}
