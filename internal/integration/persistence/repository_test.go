package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence/persistencetest"
)

func TestReceiptRepository_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewReceiptRepository(persistencetest.NewTestDB(t))

	receipt := entity.NewReceipt(uuid.New(), "receipts/a.png", "image/png", "Zepto")
	if err := repo.Create(ctx, receipt); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Completing straight from pending is not allowed.
	ok, err := repo.MarkCompleted(ctx, receipt.ID, decimal.NewFromInt(1), "{}")
	if err != nil || ok {
		t.Fatalf("expected pending -> completed to be rejected, ok=%v err=%v", ok, err)
	}

	ok, err = repo.MarkProcessing(ctx, receipt.ID)
	if err != nil || !ok {
		t.Fatalf("expected first claim to win, ok=%v err=%v", ok, err)
	}

	ok, err = repo.MarkProcessing(ctx, receipt.ID)
	if err != nil || ok {
		t.Fatalf("expected second claim to lose, ok=%v err=%v", ok, err)
	}

	ok, err = repo.MarkCompleted(ctx, receipt.ID, decimal.RequireFromString("25.50"), "{\"total_amount\":\"25.50\"}")
	if err != nil || !ok {
		t.Fatalf("expected completion to win, ok=%v err=%v", ok, err)
	}

	ok, err = repo.MarkFailed(ctx, receipt.ID, "late failure")
	if err != nil || ok {
		t.Fatalf("expected completed receipt to stay completed, ok=%v err=%v", ok, err)
	}

	stored, err := repo.FindByID(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != entity.ReceiptStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
	if stored.TotalAmount == nil || !stored.TotalAmount.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected total 25.50, got %v", stored.TotalAmount)
	}
}

func TestReceiptRepository_RejectsUnknownTransition(t *testing.T) {
	ctx := context.Background()
	repo := &receiptRepository{db: persistencetest.NewTestDB(t)}

	receipt := entity.NewReceipt(uuid.New(), "receipts/b.png", "image/png", "Zepto")
	if err := repo.Create(ctx, receipt); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := repo.transition(ctx, receipt.ID, entity.ReceiptStatusPending, entity.ReceiptStatusCompleted, map[string]interface{}{})
	if err == nil || ok {
		t.Fatalf("expected pending -> completed to be refused, ok=%v err=%v", ok, err)
	}

	stored, err := repo.FindByID(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != entity.ReceiptStatusPending {
		t.Errorf("expected receipt to stay pending, got %s", stored.Status)
	}
}

func TestReceiptRepository_FindByIDNotFound(t *testing.T) {
	repo := NewReceiptRepository(persistencetest.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, domainerror.ErrReceiptNotFound) {
		t.Errorf("expected ErrReceiptNotFound, got %v", err)
	}
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewTestDB(t)
	items := NewLineItemRepository(db)
	tx := NewTransactor(db)
	userID := uuid.New()

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		batch := []*entity.LineItem{
			entity.NewLineItem(userID, nil, "Milk", nil, decimal.NewFromInt(3), decimal.NewFromInt(2), "", "Zepto"),
			entity.NewLineItem(userID, nil, "Bread", nil, decimal.NewFromInt(2), decimal.NewFromInt(1), "", "Zepto"),
		}
		if err := items.CreateBatch(ctx, batch); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_, total, err := items.FindByUser(ctx, userID, 0, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if total != 0 {
		t.Errorf("expected rollback to leave no items, got %d", total)
	}
}

func TestCategoryRepository_GetOrCreateByName(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(persistencetest.NewTestDB(t))

	first, err := repo.GetOrCreateByName(ctx, "Spices", "")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := repo.GetOrCreateByName(ctx, "Spices", "ignored")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same category, got %s and %s", first.ID, second.ID)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected one category, got %d", len(all))
	}

	if err := repo.Create(ctx, entity.NewCategory("Spices", "")); !errors.Is(err, domainerror.ErrCategoryNameExists) {
		t.Errorf("expected ErrCategoryNameExists, got %v", err)
	}
}

func TestBudgetRepository_UniquePerUserAndPeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(persistencetest.NewTestDB(t))
	userID := uuid.New()

	weekly := entity.NewBudget(userID, decimal.NewFromInt(100), entity.BudgetPeriodWeekly, entity.CurrencyUSD, decimal.NewFromInt(80))
	if err := repo.Create(ctx, weekly); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := entity.NewBudget(userID, decimal.NewFromInt(50), entity.BudgetPeriodWeekly, entity.CurrencyUSD, decimal.NewFromInt(40))
	if err := repo.Create(ctx, dup); !errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
		t.Errorf("expected ErrBudgetAlreadyExists, got %v", err)
	}

	monthly := entity.NewBudget(userID, decimal.NewFromInt(400), entity.BudgetPeriodMonthly, entity.CurrencyUSD, decimal.NewFromInt(300))
	monthly.CreatedAt = weekly.CreatedAt.Add(time.Minute)
	if err := repo.Create(ctx, monthly); err != nil {
		t.Fatalf("create monthly: %v", err)
	}

	latest, err := repo.FindLatestByUser(ctx, userID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != monthly.ID {
		t.Errorf("expected monthly budget to be latest")
	}
}

func TestBudgetRepository_NotificationLatch(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(persistencetest.NewTestDB(t))

	budget := entity.NewBudget(uuid.New(), decimal.NewFromInt(100), entity.BudgetPeriodWeekly, entity.CurrencyUSD, decimal.NewFromInt(80))
	if err := repo.Create(ctx, budget); err != nil {
		t.Fatalf("create: %v", err)
	}

	won, err := repo.ClaimNotification(ctx, budget.ID)
	if err != nil || !won {
		t.Fatalf("expected first claim to win, won=%v err=%v", won, err)
	}
	won, err = repo.ClaimNotification(ctx, budget.ID)
	if err != nil || won {
		t.Fatalf("expected second claim to lose, won=%v err=%v", won, err)
	}

	pending, err := repo.FindUnnotified(ctx)
	if err != nil {
		t.Fatalf("unnotified: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected claimed budget to leave the sweep set")
	}

	if err := repo.ReleaseNotification(ctx, budget.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	won, err = repo.ClaimNotification(ctx, budget.ID)
	if err != nil || !won {
		t.Fatalf("expected claim after release to win, won=%v err=%v", won, err)
	}
}

func TestBudgetRepository_UpdateSettingsKeepsLatch(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(persistencetest.NewTestDB(t))

	budget := entity.NewBudget(uuid.New(), decimal.NewFromInt(100), entity.BudgetPeriodWeekly, entity.CurrencyUSD, decimal.NewFromInt(80))
	if err := repo.Create(ctx, budget); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.ClaimNotification(ctx, budget.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	// Stale copy still says false; the update must not reopen the latch.
	budget.Amount = decimal.NewFromInt(150)
	if err := repo.UpdateSettings(ctx, budget); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.FindByID(ctx, budget.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.NotificationSent {
		t.Error("expected latch to remain set")
	}
	if !stored.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected amount 150, got %s", stored.Amount)
	}
}

func TestLineItemRepository_FindByUserCreatedBetween(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewTestDB(t)
	items := NewLineItemRepository(db)
	categories := NewCategoryRepository(db)
	userID := uuid.New()

	dairy, err := categories.GetOrCreateByName(ctx, "Dairy & Eggs", "")
	if err != nil {
		t.Fatalf("category: %v", err)
	}

	start := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	inside := entity.NewLineItem(userID, nil, "Milk", &dairy.ID, decimal.NewFromInt(3), decimal.NewFromInt(1), "", "")
	inside.CreatedAt = start
	before := entity.NewLineItem(userID, nil, "Old", nil, decimal.NewFromInt(3), decimal.NewFromInt(1), "", "")
	before.CreatedAt = start.Add(-time.Second)
	atEnd := entity.NewLineItem(userID, nil, "Tomorrow", nil, decimal.NewFromInt(3), decimal.NewFromInt(1), "", "")
	atEnd.CreatedAt = end
	other := entity.NewLineItem(uuid.New(), nil, "Someone else", nil, decimal.NewFromInt(3), decimal.NewFromInt(1), "", "")
	other.CreatedAt = start.Add(time.Hour)

	if err := items.CreateBatch(ctx, []*entity.LineItem{inside, before, atEnd, other}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := items.FindByUserCreatedBetween(ctx, userID, start, end)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].Item.ID != inside.ID {
		t.Fatalf("expected only the item inside the window, got %d items", len(got))
	}
	if got[0].CategoryName() != "Dairy & Eggs" {
		t.Errorf("expected preloaded category, got %q", got[0].CategoryName())
	}
}

func TestShoppingListRepository_MarkItemsPurchased(t *testing.T) {
	ctx := context.Background()
	repo := NewShoppingListRepository(persistencetest.NewTestDB(t))

	list := entity.NewShoppingList(uuid.New(), "Weekly", nil, "")
	milk := entity.NewShoppingListItem(list.ID, "Milk", nil, decimal.NewFromInt(2), "litre", nil, entity.PriorityLow, "")
	eggs := entity.NewShoppingListItem(list.ID, "Eggs", nil, decimal.NewFromInt(12), "", nil, entity.PriorityHigh, "")
	list.Items = []*entity.ShoppingListItem{milk, eggs}
	if err := repo.Create(ctx, list); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.MarkItemsPurchased(ctx, list.ID, []uuid.UUID{milk.ID, uuid.New()}, time.Now())
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 updated item, got %d", updated)
	}

	open, err := repo.CountUnpurchased(ctx, list.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if open != 1 {
		t.Errorf("expected 1 open item, got %d", open)
	}

	stored, err := repo.FindByID(ctx, list.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].Name != "Eggs" {
		t.Fatalf("expected high priority item first, got %+v", stored.Items)
	}
	purchased := stored.Items[1]
	if !purchased.IsPurchased || purchased.PurchaseFrequency != 1 || purchased.LastPurchaseDate == nil {
		t.Errorf("expected milk to be purchased once, got %+v", purchased)
	}
}

func TestUserRepository_Save(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(persistencetest.NewTestDB(t))

	user := entity.NewUser("old@example.com", "")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("insert: %v", err)
	}

	user.Email = "new@example.com"
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Errorf("expected refreshed email, got %q", got.Email)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
