package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/application/usecase/receipt"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

type fakeProcessor struct {
	output *receipt.ProcessReceiptOutput
	err    error
	seen   []uuid.UUID
}

func (f *fakeProcessor) Execute(ctx context.Context, input receipt.ProcessReceiptInput) (*receipt.ProcessReceiptOutput, error) {
	f.seen = append(f.seen, input.ReceiptID)
	return f.output, f.err
}

type fakeSweeper struct {
	err  error
	runs []string
}

func (f *fakeSweeper) Execute(ctx context.Context, input budget.SweepBudgetsInput) (*budget.SweepSummary, error) {
	f.runs = append(f.runs, input.RunID)
	if f.err != nil {
		return nil, f.err
	}
	return &budget.SweepSummary{RunID: input.RunID}, nil
}

func TestHandleProcessReceipt(t *testing.T) {
	notPending := domainerror.NewReceiptError(domainerror.ErrCodeReceiptNotPending, "done", domainerror.ErrReceiptNotPending)

	tests := []struct {
		name      string
		processor *fakeProcessor
		wantErr   bool
	}{
		{name: "completed", processor: &fakeProcessor{output: &receipt.ProcessReceiptOutput{}}},
		{name: "failed state is acknowledged", processor: &fakeProcessor{output: &receipt.ProcessReceiptOutput{Failure: errors.New("malformed")}}},
		{name: "already claimed", processor: &fakeProcessor{err: notPending}},
		{name: "database down is retried", processor: &fakeProcessor{err: errors.New("connection refused")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(tt.processor, &fakeSweeper{})
			id := uuid.New()
			task, err := NewProcessReceiptTask(id)
			if err != nil {
				t.Fatalf("build task: %v", err)
			}

			err = h.HandleProcessReceipt(context.Background(), task)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if len(tt.processor.seen) != 1 || tt.processor.seen[0] != id {
				t.Errorf("expected receipt %s processed, got %v", id, tt.processor.seen)
			}
		})
	}
}

func TestHandleProcessReceipt_BadPayloadSkipsRetry(t *testing.T) {
	h := NewHandlers(&fakeProcessor{}, &fakeSweeper{})

	err := h.HandleProcessReceipt(context.Background(), asynq.NewTask(TaskProcessReceipt, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleBudgetSweep(t *testing.T) {
	t.Run("runs with payload run id", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		task, _ := NewBudgetSweepTask("run-1")

		if err := NewHandlers(&fakeProcessor{}, sweeper).HandleBudgetSweep(context.Background(), task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sweeper.runs) != 1 || sweeper.runs[0] != "run-1" {
			t.Errorf("expected run-1, got %v", sweeper.runs)
		}
	})

	t.Run("overlapping sweep is skipped", func(t *testing.T) {
		sweeper := &fakeSweeper{err: domainerror.NewBudgetError(domainerror.ErrCodeSweepInProgress, "busy", domainerror.ErrSweepInProgress)}
		task, _ := NewBudgetSweepTask("")

		if err := NewHandlers(&fakeProcessor{}, sweeper).HandleBudgetSweep(context.Background(), task); err != nil {
			t.Fatalf("expected skip, got %v", err)
		}
	})

	t.Run("other errors are returned", func(t *testing.T) {
		sweeper := &fakeSweeper{err: errors.New("boom")}
		task, _ := NewBudgetSweepTask("")

		if err := NewHandlers(&fakeProcessor{}, sweeper).HandleBudgetSweep(context.Background(), task); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestAsynqReceiptDispatcher(t *testing.T) {
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}

	client := asynq.NewClient(opt)
	defer client.Close()
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	id := uuid.New()
	if err := NewAsynqReceiptDispatcher(client).Dispatch(context.Background(), id); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	tasks, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskProcessReceipt || tasks[0].MaxRetry != DefaultMaxRetry {
		t.Errorf("unexpected task %s (max retry %d)", tasks[0].Type, tasks[0].MaxRetry)
	}
}
