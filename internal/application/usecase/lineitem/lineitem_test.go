package lineitem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence"
	"github.com/spend-smart/backend/internal/integration/persistence/persistencetest"
)

func TestCreateLineItem(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewTestDB(t)
	categories := persistence.NewCategoryRepository(db)
	items := persistence.NewLineItemRepository(db)

	fallback, _ := categories.GetOrCreateByName(ctx, "Other", "")
	dairy, _ := categories.GetOrCreateByName(ctx, "Dairy & Eggs", "")
	missing := uuid.New()

	uc := NewCreateLineItemUseCase(items, categories, fallback)
	userID := uuid.New()

	tests := []struct {
		name         string
		input        CreateLineItemInput
		wantCode     domainerror.LineItemErrorCode
		wantCategory string
		wantUnit     string
	}{
		{
			name:         "defaults",
			input:        CreateLineItemInput{UserID: userID, Name: "Bread", Price: decimal.NewFromInt(2), Quantity: decimal.NewFromInt(1)},
			wantCategory: "Other",
			wantUnit:     entity.DefaultUnit,
		},
		{
			name:         "explicit category",
			input:        CreateLineItemInput{UserID: userID, Name: "Milk", Price: decimal.NewFromInt(3), Quantity: decimal.NewFromInt(2), Unit: "l", CategoryID: &dairy.ID},
			wantCategory: "Dairy & Eggs",
			wantUnit:     "l",
		},
		{
			name:     "missing name",
			input:    CreateLineItemInput{UserID: userID, Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
			wantCode: domainerror.ErrCodeItemNameRequired,
		},
		{
			name:     "zero price",
			input:    CreateLineItemInput{UserID: userID, Name: "Free", Quantity: decimal.NewFromInt(1)},
			wantCode: domainerror.ErrCodeInvalidPrice,
		},
		{
			name:     "negative quantity",
			input:    CreateLineItemInput{UserID: userID, Name: "Odd", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(-1)},
			wantCode: domainerror.ErrCodeInvalidQuantity,
		},
		{
			name:     "unknown category",
			input:    CreateLineItemInput{UserID: userID, Name: "Odd", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1), CategoryID: &missing},
			wantCode: domainerror.ErrCodeItemCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(ctx, tt.input)
			if tt.wantCode != "" {
				var itemErr *domainerror.LineItemError
				if !errors.As(err, &itemErr) || itemErr.Code != tt.wantCode {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Item.CategoryName() != tt.wantCategory {
				t.Errorf("expected category %q, got %q", tt.wantCategory, out.Item.CategoryName())
			}
			if out.Item.Item.Unit != tt.wantUnit {
				t.Errorf("expected unit %q, got %q", tt.wantUnit, out.Item.Item.Unit)
			}
		})
	}

	list, err := NewListLineItemsUseCase(items).Execute(ctx, ListLineItemsInput{UserID: userID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 2 {
		t.Errorf("expected 2 stored items, got %d", list.Total)
	}
}

func TestUpdateLineItemCategory(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewTestDB(t)
	categories := persistence.NewCategoryRepository(db)
	items := persistence.NewLineItemRepository(db)

	fallback, _ := categories.GetOrCreateByName(ctx, "Other", "")
	snacks, _ := categories.GetOrCreateByName(ctx, "Snacks", "")

	userID := uuid.New()
	created, err := NewCreateLineItemUseCase(items, categories, fallback).Execute(ctx, CreateLineItemInput{
		UserID: userID, Name: "Chips", Price: decimal.NewFromInt(2), Quantity: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	itemID := created.Item.Item.ID

	uc := NewUpdateLineItemCategoryUseCase(items, categories, fallback)

	out, err := uc.Execute(ctx, UpdateLineItemCategoryInput{ItemID: itemID, UserID: userID, CategoryID: &snacks.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Item.CategoryName() != "Snacks" {
		t.Errorf("expected Snacks, got %q", out.Item.CategoryName())
	}
	if !out.Item.Item.Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("price must not change, got %s", out.Item.Item.Price)
	}

	out, err = uc.Execute(ctx, UpdateLineItemCategoryInput{ItemID: itemID, UserID: userID})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if out.Item.CategoryName() != "Other" {
		t.Errorf("expected fallback, got %q", out.Item.CategoryName())
	}

	_, err = uc.Execute(ctx, UpdateLineItemCategoryInput{ItemID: itemID, UserID: uuid.New(), CategoryID: &snacks.ID})
	if !errors.Is(err, domainerror.ErrLineItemNotFound) {
		t.Errorf("expected not found for another user, got %v", err)
	}
}
