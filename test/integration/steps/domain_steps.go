package steps

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/domain/entity"
	"github.com/spend-smart/backend/internal/integration/persistence"
)

func (tc *TestContext) iAmAuthenticatedAs(emailAddress string) error {
	name, _, _ := strings.Cut(emailAddress, "@")
	user := entity.NewUser(emailAddress, name)
	if err := persistence.NewUserRepository(tc.env.db.DbConn).Save(context.Background(), user); err != nil {
		return err
	}

	token, err := tc.env.tokens.IssueAccessToken(user.ID, user.Email, time.Hour)
	if err != nil {
		return err
	}

	tc.userID = user.ID
	tc.accessToken = token
	return nil
}

func (tc *TestContext) theExtractionServiceReadsReceiptsAs(doc *godog.DocString) error {
	tc.env.extractor.Respond(adapter.PromptReceiptToItems, doc.Content)
	return nil
}

func (tc *TestContext) theExtractionServiceRecommends(doc *godog.DocString) error {
	tc.env.extractor.Respond(adapter.PromptHistoryToShoppingList, doc.Content)
	return nil
}

func (tc *TestContext) theExtractionServiceIsUnavailable() error {
	tc.env.extractor.Fail(adapter.PromptReceiptToItems)
	tc.env.extractor.Fail(adapter.PromptHistoryToShoppingList)
	return nil
}

func (tc *TestContext) theExtractionServiceShouldHaveReceived(count int, kind string) error {
	if got := tc.env.extractor.Requests(adapter.PromptKind(kind)); got != count {
		return fmt.Errorf("expected %d %q requests, got %d", count, kind, got)
	}
	return nil
}

func (tc *TestContext) theBudgetSweepRuns() error {
	_, err := tc.env.injector.SweepBudgets.Execute(context.Background(), budget.SweepBudgetsInput{RunID: "bdd"})
	return err
}

func (tc *TestContext) budgetAlertEmailsShouldHaveBeenSentTo(count int, recipient string) error {
	sent := 0
	for _, msg := range tc.env.mailer.SentEmails() {
		if msg.To == recipient && strings.HasPrefix(msg.Subject, "Budget Alert") {
			sent++
		}
	}
	if sent != count {
		return fmt.Errorf("expected %d budget alerts to %s, got %d", count, recipient, sent)
	}
	return nil
}

func (tc *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	m, ok := tc.env.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := tc.env.db.DbConn.Unscoped().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}
