// Package model defines database models for persistence layer.
package model

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&ReceiptModel{},
		&LineItemModel{},
		&BudgetModel{},
		&ShoppingListModel{},
		&ShoppingListItemModel{},
	}
}
