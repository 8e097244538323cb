package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Amount                *decimal.Decimal `json:"amount" binding:"required"`
	Period                string           `json:"period" binding:"required"`
	Currency              string           `json:"currency,omitempty"`
	NotificationThreshold *decimal.Decimal `json:"notification_threshold" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Amount                *decimal.Decimal `json:"amount,omitempty"`
	Currency              *string          `json:"currency,omitempty"`
	NotificationThreshold *decimal.Decimal `json:"notification_threshold,omitempty"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID                    string    `json:"id"`
	Amount                string    `json:"amount"`
	Period                string    `json:"period"`
	Currency              string    `json:"currency"`
	CurrencySymbol        string    `json:"currency_symbol"`
	NotificationThreshold string    `json:"notification_threshold"`
	NotificationSent      bool      `json:"notification_sent"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// CategorySpendResponse is one row of the spend breakdown.
type CategorySpendResponse struct {
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       string  `json:"amount"`
	Percentage   string  `json:"percentage"`
}

// BudgetAnalyticsResponse represents spend against the latest budget.
type BudgetAnalyticsResponse struct {
	BudgetID              string                  `json:"budget_id"`
	Period                string                  `json:"period"`
	PeriodStart           string                  `json:"period_start"`
	PeriodEnd             string                  `json:"period_end"`
	BudgetAmount          string                  `json:"budget_amount"`
	Spent                 string                  `json:"spent"`
	Remaining             string                  `json:"remaining"`
	UsagePercentage       string                  `json:"usage_percentage"`
	NotificationThreshold string                  `json:"notification_threshold"`
	NotificationSent      bool                    `json:"notification_sent"`
	Currency              string                  `json:"currency"`
	CurrencySymbol        string                  `json:"currency_symbol"`
	CategoryBreakdown     []CategorySpendResponse `json:"category_breakdown"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:                    b.ID.String(),
		Amount:                Money(b.Amount),
		Period:                string(b.Period),
		Currency:              string(b.Currency),
		CurrencySymbol:        b.Currency.Symbol(),
		NotificationThreshold: Money(b.NotificationThreshold),
		NotificationSent:      b.NotificationSent,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// ToBudgetListResponse converts budgets to a BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	response := BudgetListResponse{Budgets: make([]BudgetResponse, 0, len(budgets))}
	for _, b := range budgets {
		response.Budgets = append(response.Budgets, ToBudgetResponse(b))
	}
	return response
}

// ToBudgetAnalyticsResponse converts the analytics output.
// The period end is reported inclusively as the last day of the window.
func ToBudgetAnalyticsResponse(output *budget.GetAnalyticsOutput) BudgetAnalyticsResponse {
	b := output.Budget
	response := BudgetAnalyticsResponse{
		BudgetID:              b.ID.String(),
		Period:                string(b.Period),
		PeriodStart:           output.Window.Start.Format(time.DateOnly),
		PeriodEnd:             output.Window.End.AddDate(0, 0, -1).Format(time.DateOnly),
		BudgetAmount:          Money(b.Amount),
		Spent:                 Money(output.Spent),
		Remaining:             Money(output.Remaining),
		UsagePercentage:       Money(output.UsagePercentage),
		NotificationThreshold: Money(b.NotificationThreshold),
		NotificationSent:      b.NotificationSent,
		Currency:              string(b.Currency),
		CurrencySymbol:        b.Currency.Symbol(),
		CategoryBreakdown:     make([]CategorySpendResponse, 0, len(output.Breakdown)),
	}
	for _, row := range output.Breakdown {
		response.CategoryBreakdown = append(response.CategoryBreakdown, CategorySpendResponse{
			CategoryID:   optionalID(row.CategoryID),
			CategoryName: row.CategoryName,
			Amount:       Money(row.Amount),
			Percentage:   Money(row.Percentage),
		})
	}
	return response
}
