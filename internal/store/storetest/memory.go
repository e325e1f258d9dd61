// Package storetest provides an in-memory store.Store for tests. Every
// operation holds a single mutex, which gives it the same per-document
// atomicity the Mongo implementation relies on.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"canteen/internal/models"
	"canteen/internal/store"
)

type Memory struct {
	mu        sync.Mutex
	canteens  map[primitive.ObjectID]models.Canteen
	menuItems map[primitive.ObjectID]models.MenuItem
	users     map[primitive.ObjectID]models.User
	orders    map[primitive.ObjectID]models.Order
	wallets   map[primitive.ObjectID]models.Wallet

	// PingErr is returned by Ping when set.
	PingErr error
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		canteens:  make(map[primitive.ObjectID]models.Canteen),
		menuItems: make(map[primitive.ObjectID]models.MenuItem),
		users:     make(map[primitive.ObjectID]models.User),
		orders:    make(map[primitive.ObjectID]models.Order),
		wallets:   make(map[primitive.ObjectID]models.Wallet),
	}
}

func (m *Memory) AddCanteen(c models.Canteen) models.Canteen {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.canteens[c.ID] = c
	return c
}

func (m *Memory) AddMenuItem(item models.MenuItem) models.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	m.menuItems[item.ID] = item
	return item
}

func (m *Memory) AddUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = u
	return u
}

func (m *Memory) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *Memory) FindCanteen(ctx context.Context, id primitive.ObjectID) (models.Canteen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.canteens[id]
	if !ok {
		return models.Canteen{}, store.ErrNotFound
	}
	return c, nil
}

func (m *Memory) ListCanteens(ctx context.Context) ([]models.Canteen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Canteen, 0, len(m.canteens))
	for _, c := range m.canteens {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) FindMenuItem(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.menuItems[id]
	if !ok {
		return models.MenuItem{}, store.ErrNotFound
	}
	return item, nil
}

func (m *Memory) ListMenuItems(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MenuItem, 0)
	for _, item := range m.menuItems {
		if item.CanteenID != filter.CanteenID {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Dietary != "" && item.Dietary != filter.Dietary {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) UpdateMenuItem(ctx context.Context, id primitive.ObjectID, update store.MenuItemUpdate) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.menuItems[id]
	if !ok {
		return models.MenuItem{}, store.ErrNotFound
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.IsAvailable != nil {
		item.IsAvailable = *update.IsAvailable
	}
	item.UpdatedAt = time.Now()
	m.menuItems[id] = item
	return item, nil
}

func (m *Memory) FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *Memory) InsertOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders[order.ID] = copyOrder(*order)
	return nil
}

func (m *Memory) FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return copyOrder(o), nil
}

func (m *Memory) ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0)
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	if o.Status != from {
		return models.Order{}, store.ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = at
	o.StatusHistory = append(o.StatusHistory, models.StatusChange{Status: to, At: at})
	m.orders[id] = o
	return copyOrder(o), nil
}

func (m *Memory) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return copyOrder(o), nil
}

func (m *Memory) CompletePayment(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	if o.PaymentStatus != models.PaymentStatusPending || o.Status == models.OrderStatusCancelled {
		return models.Order{}, store.ErrStatusConflict
	}
	o.PaymentStatus = models.PaymentStatusCompleted
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return copyOrder(o), nil
}

func (m *Memory) ReserveRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	if o.RefundedAmount.Add(amount).GreaterThan(o.FinalAmount) {
		return models.Order{}, store.ErrRefundExceeded
	}
	o.RefundedAmount = o.RefundedAmount.Add(amount)
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return copyOrder(o), nil
}

func (m *Memory) ReleaseRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.RefundedAmount = o.RefundedAmount.Sub(amount)
	m.orders[id] = o
	return nil
}

func (m *Memory) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback models.Feedback) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	if o.Feedback != nil {
		return models.Order{}, store.ErrFeedbackExists
	}
	fb := feedback
	o.Feedback = &fb
	m.orders[id] = o
	return copyOrder(o), nil
}

func (m *Memory) EnsureWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyWallet(m.ensureLocked(userID)), nil
}

func (m *Memory) FindWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[userID]
	if !ok {
		return models.Wallet{}, store.ErrNotFound
	}
	return copyWallet(w), nil
}

func (m *Memory) ApplyCredit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.ensureLocked(userID)
	w.Balance = w.Balance.Add(tx.Amount)
	w.TotalAdded = w.TotalAdded.Add(tx.Amount)
	w.Transactions = append(w.Transactions, tx)
	w.UpdatedAt = tx.Date
	m.wallets[userID] = w
	return copyWallet(w), nil
}

func (m *Memory) ApplyDebit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[userID]
	if !ok {
		return models.Wallet{}, store.ErrNotFound
	}
	if w.Balance.LessThan(tx.Amount) {
		return models.Wallet{}, store.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(tx.Amount)
	w.TotalSpent = w.TotalSpent.Add(tx.Amount)
	w.Transactions = append(w.Transactions, tx)
	w.UpdatedAt = tx.Date
	m.wallets[userID] = w
	return copyWallet(w), nil
}

func (m *Memory) ListTransactions(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[userID]
	if !ok {
		return nil, 0, store.ErrNotFound
	}
	total := int64(len(w.Transactions))
	page := make([]models.Transaction, 0, limit)
	for i := total - 1 - offset; i >= 0 && int64(len(page)) < limit; i-- {
		page = append(page, w.Transactions[i])
	}
	return page, total, nil
}

func (m *Memory) ensureLocked(userID primitive.ObjectID) models.Wallet {
	w, ok := m.wallets[userID]
	if !ok {
		now := time.Now()
		w = models.Wallet{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			Transactions: []models.Transaction{},
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		m.wallets[userID] = w
	}
	return w
}

func copyOrder(o models.Order) models.Order {
	o.Lines = append([]models.OrderLine(nil), o.Lines...)
	o.StatusHistory = append([]models.StatusChange(nil), o.StatusHistory...)
	if o.Feedback != nil {
		fb := *o.Feedback
		o.Feedback = &fb
	}
	return o
}

func copyWallet(w models.Wallet) models.Wallet {
	w.Transactions = append([]models.Transaction(nil), w.Transactions...)
	return w
}
