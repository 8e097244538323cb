// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"strings"

	"github.com/spend-smart/backend/internal/application/adapter"
)

const receiptSchema = `{"platform": string, "total_amount": number, "items": [{"name": string, "quantity": number, "unit_price": number, "total_price": number, "category": string}]}`

const shoppingListSchema = `{"list_name": string, "items": [{"name": string, "category": string, "quantity": number, "unit": string, "estimated_price": number, "priority": "low" | "medium" | "high", "notes": string}], "total_estimated_cost": number, "suggestions": [string]}`

// buildPrompt renders the instruction text for the given request kind.
func buildPrompt(req adapter.ExtractionRequest) (string, error) {
	switch req.Kind {
	case adapter.PromptReceiptToItems:
		return buildReceiptPrompt(req), nil
	case adapter.PromptHistoryToShoppingList:
		return buildShoppingListPrompt(req), nil
	default:
		return "", fmt.Errorf("unknown prompt kind %q", req.Kind)
	}
}

func buildReceiptPrompt(req adapter.ExtractionRequest) string {
	var sb strings.Builder

	sb.WriteString("You are reading a photographed shopping receipt. Extract every purchased line item.\n")
	sb.WriteString("Respond with a single JSON object and nothing else, with exactly this shape:\n")
	sb.WriteString(receiptSchema)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- platform is the store or app name printed on the receipt.\n")
	sb.WriteString("- quantity and prices are plain numbers without currency symbols.\n")
	sb.WriteString("- total_amount is the grand total printed on the receipt.\n")
	writeVocabulary(&sb, req.Categories)
	if req.FallbackCategory != "" {
		fmt.Fprintf(&sb, "- If no category fits an item, use %q.\n", req.FallbackCategory)
	}
	return sb.String()
}

func buildShoppingListPrompt(req adapter.ExtractionRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a grocery planning assistant. Using the purchase history summary and budget below, suggest the user's next shopping list.\n")
	sb.WriteString("Respond with a single JSON object and nothing else, with exactly this shape:\n")
	sb.WriteString(shoppingListSchema)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- Favour items the user buys often and is likely to run out of.\n")
	sb.WriteString("- Keep total_estimated_cost within the budget amount when a budget is given.\n")
	sb.WriteString("- suggestions are short money-saving tips.\n")
	writeVocabulary(&sb, req.Categories)
	sb.WriteString("\nPurchase history and budget (JSON):\n")
	sb.WriteString(req.Context)
	sb.WriteString("\n")
	return sb.String()
}

func writeVocabulary(sb *strings.Builder, categories []string) {
	if len(categories) == 0 {
		return
	}
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	fmt.Fprintf(sb, "- category must be one of: %s.\n", strings.Join(quoted, ", "))
}

// stripWrapping removes code fences and any prose around the outermost JSON object.
func stripWrapping(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```json")
			text = strings.TrimPrefix(text, "```")
		}
		text = strings.TrimSpace(text)
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	if !strings.HasPrefix(text, "{") {
		start := strings.IndexByte(text, '{')
		end := strings.LastIndexByte(text, '}')
		if start >= 0 && end > start {
			text = text[start : end+1]
		}
	}
	return text
}
