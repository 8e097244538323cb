package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence"
	"github.com/spend-smart/backend/internal/integration/persistence/persistencetest"
	"github.com/spend-smart/backend/internal/integration/storage"
)

const milkPayload = `{"total_amount":"25.50","items":[{"name":"Milk","quantity":"2","unit_price":"3.00","total_price":"6.00","category":"Dairy & Eggs"}],"platform":"Zepto"}`

type fakeExtractor struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []adapter.ExtractionRequest
}

func (f *fakeExtractor) Extract(ctx context.Context, req adapter.ExtractionRequest) (*adapter.RawExtraction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.RawExtraction{Text: f.text, Model: "fake"}, nil
}

type fakeDispatcher struct {
	err   error
	calls int
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, receiptID uuid.UUID) error {
	f.calls++
	return f.err
}

// failingLineItems makes CreateBatch fail.
type failingLineItems struct {
	adapter.LineItemRepository
}

func (f failingLineItems) CreateBatch(ctx context.Context, items []*entity.LineItem) error {
	return errors.New("disk full")
}

// lostCompletion makes MarkCompleted lose the status race.
type lostCompletion struct {
	adapter.ReceiptRepository
}

func (l lostCompletion) MarkCompleted(ctx context.Context, id uuid.UUID, total decimal.Decimal, raw string) (bool, error) {
	return false, nil
}

// unreadableReceipt fails the first FindByID after the claim.
type unreadableReceipt struct {
	adapter.ReceiptRepository
	failed bool
}

func (u *unreadableReceipt) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	if !u.failed {
		u.failed = true
		return nil, errors.New("connection reset")
	}
	return u.ReceiptRepository.FindByID(ctx, id)
}

type fixture struct {
	receipts   adapter.ReceiptRepository
	lineItems  adapter.LineItemRepository
	categories adapter.CategoryRepository
	images     *storage.MemoryImageStore
	transactor adapter.Transactor
	extractor  *fakeExtractor
	fallback   *entity.Category
	userID     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := persistencetest.NewTestDB(t)

	f := &fixture{
		receipts:   persistence.NewReceiptRepository(db),
		lineItems:  persistence.NewLineItemRepository(db),
		categories: persistence.NewCategoryRepository(db),
		images:     storage.NewMemoryImageStore(),
		transactor: persistence.NewTransactor(db),
		extractor:  &fakeExtractor{text: milkPayload},
		userID:     uuid.New(),
	}

	ctx := context.Background()
	for _, seed := range entity.DefaultCategories {
		c, err := f.categories.GetOrCreateByName(ctx, seed.Name, seed.Description)
		if err != nil {
			t.Fatalf("seed category: %v", err)
		}
		if c.Name == entity.DefaultFallbackCategoryName {
			f.fallback = c
		}
	}
	return f
}

func (f *fixture) processor() *ProcessReceiptUseCase {
	return NewProcessReceiptUseCase(f.receipts, f.lineItems, f.categories, f.images, f.extractor, f.transactor, f.fallback)
}

func (f *fixture) pendingReceipt(t *testing.T) *entity.Receipt {
	t.Helper()
	ctx := context.Background()

	receipt := entity.NewReceipt(f.userID, "receipts/test.jpg", "image/jpeg", "Zepto")
	if err := f.images.Put(ctx, receipt.ImageKey, []byte("jpeg-bytes"), "image/jpeg"); err != nil {
		t.Fatalf("put image: %v", err)
	}
	if err := f.receipts.Create(ctx, receipt); err != nil {
		t.Fatalf("create receipt: %v", err)
	}
	return receipt
}

func (f *fixture) itemCount(t *testing.T, receiptID uuid.UUID) int {
	t.Helper()
	items, err := f.lineItems.FindByReceipt(context.Background(), receiptID)
	if err != nil {
		t.Fatalf("find items: %v", err)
	}
	return len(items)
}

func failureOf(t *testing.T, receipt *entity.Receipt) failurePayload {
	t.Helper()
	var payload failurePayload
	if err := json.Unmarshal([]byte(receipt.RawPayload), &payload); err != nil {
		t.Fatalf("raw payload is not a failure document: %v (%q)", err, receipt.RawPayload)
	}
	return payload
}

func TestProcessReceipt_Completed(t *testing.T) {
	f := newFixture(t)
	receipt := f.pendingReceipt(t)

	out, err := f.processor().Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Failure != nil {
		t.Fatalf("unexpected failure: %v", out.Failure)
	}

	if out.Receipt.Status != entity.ReceiptStatusCompleted {
		t.Fatalf("expected completed, got %s", out.Receipt.Status)
	}
	if out.Receipt.TotalAmount == nil || !out.Receipt.TotalAmount.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected total 25.50, got %v", out.Receipt.TotalAmount)
	}

	items, err := f.lineItems.FindByReceipt(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("find items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	milk := items[0]
	if milk.Item.Name != "Milk" {
		t.Errorf("expected Milk, got %q", milk.Item.Name)
	}
	if !milk.Item.Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected quantity 2, got %s", milk.Item.Quantity)
	}
	if !milk.Item.Price.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("expected price 3.00, got %s", milk.Item.Price)
	}
	if milk.CategoryName() != "Dairy & Eggs" {
		t.Errorf("expected Dairy & Eggs, got %q", milk.CategoryName())
	}
	if milk.Item.Platform != "Zepto" {
		t.Errorf("expected platform Zepto, got %q", milk.Item.Platform)
	}

	req := f.extractor.requests[0]
	if req.Kind != adapter.PromptReceiptToItems {
		t.Errorf("expected receipt prompt, got %s", req.Kind)
	}
	if req.FallbackCategory != entity.DefaultFallbackCategoryName {
		t.Errorf("expected fallback in request, got %q", req.FallbackCategory)
	}
	if len(req.Categories) != len(entity.DefaultCategories) {
		t.Errorf("expected %d categories in request, got %d", len(entity.DefaultCategories), len(req.Categories))
	}
}

func TestProcessReceipt_UnknownCategoryFallsBack(t *testing.T) {
	f := newFixture(t)
	f.extractor.text = `{"total_amount":4,"items":[{"name":"Candle","quantity":1,"unit_price":4,"total_price":4,"category":"Decor"}]}`
	receipt := f.pendingReceipt(t)

	out, err := f.processor().Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
	if err != nil || out.Failure != nil {
		t.Fatalf("unexpected error: %v / %v", err, out.Failure)
	}

	items, _ := f.lineItems.FindByReceipt(context.Background(), receipt.ID)
	if len(items) != 1 || items[0].CategoryName() != entity.DefaultFallbackCategoryName {
		t.Fatalf("expected item in fallback category, got %+v", items)
	}
	if items[0].Item.Platform != "Zepto" {
		t.Errorf("expected receipt platform when extraction omits it, got %q", items[0].Item.Platform)
	}
}

func TestProcessReceipt_Failures(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		err      error
		wantKind string
	}{
		{
			name:     "malformed response",
			err:      domainerror.NewMalformedExtractionError(domainerror.ErrCodeExtractionMalformed, "not json", "sorry, I cannot read this", nil),
			wantKind: string(domainerror.ExtractionErrorMalformed),
		},
		{
			name:     "transport failure",
			err:      domainerror.NewExtractionError(domainerror.ExtractionErrorTransport, domainerror.ErrCodeExtractionTimeout, "timeout", context.DeadlineExceeded),
			wantKind: string(domainerror.ExtractionErrorTransport),
		},
		{
			name:     "unknown field",
			text:     `{"total_amount":"1","items":[],"currency":"INR"}`,
			wantKind: FailureKindMalformed,
		},
		{
			name:     "missing total",
			text:     `{"items":[]}`,
			wantKind: FailureKindMalformed,
		},
		{
			name:     "zero quantity rejects whole payload",
			text:     `{"total_amount":"9","items":[{"name":"Milk","quantity":"2","unit_price":"3","total_price":"6","category":"Dairy & Eggs"},{"name":"Eggs","quantity":"0","unit_price":"3","total_price":"0","category":"Dairy & Eggs"}]}`,
			wantKind: FailureKindMalformed,
		},
		{
			name:     "negative price",
			text:     `{"total_amount":"9","items":[{"name":"Milk","quantity":"1","unit_price":"-3","total_price":"-3","category":"Dairy & Eggs"}]}`,
			wantKind: FailureKindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.extractor.text = tt.text
			f.extractor.err = tt.err
			receipt := f.pendingReceipt(t)

			out, err := f.processor().Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
			if err != nil {
				t.Fatalf("failures must be recorded, not returned: %v", err)
			}
			if out.Failure == nil {
				t.Fatal("expected Failure to be set")
			}
			if out.Receipt.Status != entity.ReceiptStatusFailed {
				t.Fatalf("expected failed, got %s", out.Receipt.Status)
			}
			if out.Receipt.TotalAmount != nil {
				t.Errorf("expected no total on failed receipt, got %v", out.Receipt.TotalAmount)
			}
			if got := failureOf(t, out.Receipt).Kind; got != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, got)
			}
			if n := f.itemCount(t, receipt.ID); n != 0 {
				t.Errorf("expected no items, got %d", n)
			}
		})
	}
}

func TestProcessReceipt_MissingImage(t *testing.T) {
	f := newFixture(t)
	receipt := f.pendingReceipt(t)
	f.images.Delete(receipt.ImageKey)

	out, err := f.processor().Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Receipt.Status != entity.ReceiptStatusFailed {
		t.Fatalf("expected failed, got %s", out.Receipt.Status)
	}
	if got := failureOf(t, out.Receipt).Kind; got != FailureKindStorage {
		t.Errorf("expected storage failure, got %q", got)
	}
	if len(f.extractor.requests) != 0 {
		t.Error("extraction must not run without an image")
	}
}

func TestProcessReceipt_WriteFailureLeavesNoItems(t *testing.T) {
	t.Run("item insert fails", func(t *testing.T) {
		f := newFixture(t)
		receipt := f.pendingReceipt(t)

		uc := NewProcessReceiptUseCase(f.receipts, failingLineItems{f.lineItems}, f.categories, f.images, f.extractor, f.transactor, f.fallback)
		out, err := uc.Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Receipt.Status != entity.ReceiptStatusFailed {
			t.Fatalf("expected failed, got %s", out.Receipt.Status)
		}
		payload := failureOf(t, out.Receipt)
		if payload.Kind != FailureKindPersistence || payload.Raw != milkPayload {
			t.Errorf("expected persistence failure with raw payload, got %+v", payload)
		}
	})

	t.Run("completion is lost after items were written", func(t *testing.T) {
		f := newFixture(t)
		receipt := f.pendingReceipt(t)

		uc := NewProcessReceiptUseCase(lostCompletion{f.receipts}, f.lineItems, f.categories, f.images, f.extractor, f.transactor, f.fallback)
		out, err := uc.Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(out.Failure, domainerror.ErrReceiptStateConflict) {
			t.Errorf("expected state conflict, got %v", out.Failure)
		}
		if n := f.itemCount(t, receipt.ID); n != 0 {
			t.Errorf("expected items rolled back, got %d", n)
		}
	})
}

func TestProcessReceipt_LoadFailureAfterClaimMarksFailed(t *testing.T) {
	f := newFixture(t)
	receipt := f.pendingReceipt(t)
	ctx := context.Background()

	uc := NewProcessReceiptUseCase(&unreadableReceipt{ReceiptRepository: f.receipts}, f.lineItems, f.categories, f.images, f.extractor, f.transactor, f.fallback)
	if _, err := uc.Execute(ctx, ProcessReceiptInput{ReceiptID: receipt.ID}); err == nil {
		t.Fatal("expected load error")
	}

	stored, err := f.receipts.FindByID(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != entity.ReceiptStatusFailed {
		t.Fatalf("expected failed, got %s", stored.Status)
	}
	if payload := failureOf(t, stored); payload.Kind != FailureKindPersistence {
		t.Errorf("expected persistence failure, got %+v", payload)
	}
	if len(f.extractor.requests) != 0 {
		t.Error("extraction must not run when the receipt could not be loaded")
	}
}

func TestUploadReceipt_SameSecondUploadsKeepTheirImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	uc := NewUploadReceiptUseCase(f.receipts, f.images, &fakeDispatcher{}, 0)
	uc.now = func() time.Time { return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC) }

	upload := func(data string) *entity.Receipt {
		out, err := uc.Execute(ctx, UploadReceiptInput{
			UserID:   f.userID,
			Platform: "Zepto",
			FileName: "r.jpg",
			Data:     []byte(data),
		})
		if err != nil {
			t.Fatalf("upload %s: %v", data, err)
		}
		return out.Receipt
	}

	a := upload("receipt-A")
	b := upload("receipt-B")

	if a.ImageKey == b.ImageKey {
		t.Fatalf("expected distinct image keys, both are %s", a.ImageKey)
	}
	for receipt, want := range map[*entity.Receipt]string{a: "receipt-A", b: "receipt-B"} {
		got, err := f.images.Get(ctx, receipt.ImageKey)
		if err != nil {
			t.Fatalf("get %s: %v", receipt.ImageKey, err)
		}
		if string(got) != want {
			t.Errorf("expected %s at %s, got %s", want, receipt.ImageKey, got)
		}
	}
}

func TestProcessReceipt_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	receipt := f.pendingReceipt(t)
	uc := f.processor()

	if _, err := uc.Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	_, err := uc.Execute(context.Background(), ProcessReceiptInput{ReceiptID: receipt.ID})
	if !errors.Is(err, domainerror.ErrReceiptNotPending) {
		t.Fatalf("expected ErrReceiptNotPending, got %v", err)
	}
	if n := f.itemCount(t, receipt.ID); n != 1 {
		t.Errorf("expected items written once, got %d", n)
	}
	if len(f.extractor.requests) != 1 {
		t.Errorf("expected one extraction call, got %d", len(f.extractor.requests))
	}

	if err := NewInlineDispatcher(uc).Dispatch(context.Background(), receipt.ID); err != nil {
		t.Errorf("inline dispatch of a finished receipt must be a no-op, got %v", err)
	}
}

func TestUploadReceipt_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    UploadReceiptInput
		wantCode domainerror.ReceiptErrorCode
	}{
		{
			name:     "missing platform",
			input:    UploadReceiptInput{Platform: "  ", FileName: "r.jpg", Data: []byte("x")},
			wantCode: domainerror.ErrCodePlatformRequired,
		},
		{
			name:     "unsupported extension",
			input:    UploadReceiptInput{Platform: "Zepto", FileName: "r.gif", Data: []byte("x")},
			wantCode: domainerror.ErrCodeInvalidImageFormat,
		},
		{
			name:     "empty image",
			input:    UploadReceiptInput{Platform: "Zepto", FileName: "r.png"},
			wantCode: domainerror.ErrCodeEmptyImage,
		},
		{
			name:     "too large",
			input:    UploadReceiptInput{Platform: "Zepto", FileName: "r.JPEG", Data: []byte(strings.Repeat("x", 11))},
			wantCode: domainerror.ErrCodeImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			dispatcher := &fakeDispatcher{}
			uc := NewUploadReceiptUseCase(f.receipts, f.images, dispatcher, 10)

			_, err := uc.Execute(context.Background(), tt.input)

			var rcpErr *domainerror.ReceiptError
			if !errors.As(err, &rcpErr) || rcpErr.Code != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
			if dispatcher.calls != 0 {
				t.Error("dispatcher must not run for invalid uploads")
			}
		})
	}
}

func TestUploadReceipt_InlineProcessing(t *testing.T) {
	f := newFixture(t)
	uc := NewUploadReceiptUseCase(f.receipts, f.images, NewInlineDispatcher(f.processor()), 0)

	out, err := uc.Execute(context.Background(), UploadReceiptInput{
		UserID:   f.userID,
		Platform: " Zepto ",
		FileName: "photo.PNG",
		Data:     []byte("png-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Receipt.Status != entity.ReceiptStatusCompleted {
		t.Errorf("expected completed, got %s", out.Receipt.Status)
	}
	if out.Receipt.Platform != "Zepto" {
		t.Errorf("expected trimmed platform, got %q", out.Receipt.Platform)
	}
	if out.Receipt.ImageContentType != "image/png" {
		t.Errorf("expected image/png, got %q", out.Receipt.ImageContentType)
	}
	if !strings.HasSuffix(out.Receipt.ImageKey, ".png") {
		t.Errorf("expected png key, got %q", out.Receipt.ImageKey)
	}
	if f.extractor.requests[0].ImageMIMEType != "image/png" {
		t.Errorf("expected png mime type sent to extractor, got %q", f.extractor.requests[0].ImageMIMEType)
	}
}

func TestUploadReceipt_DispatchFailureThenReprocess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broken := &fakeDispatcher{err: errors.New("redis down")}
	_, err := NewUploadReceiptUseCase(f.receipts, f.images, broken, 0).Execute(ctx, UploadReceiptInput{
		UserID:   f.userID,
		Platform: "Zepto",
		FileName: "r.jpg",
		Data:     []byte("jpeg"),
	})
	if !errors.Is(err, domainerror.ErrReceiptDispatchFailed) {
		t.Fatalf("expected dispatch failure, got %v", err)
	}

	list, err := NewListReceiptsUseCase(f.receipts).Execute(ctx, ListReceiptsInput{UserID: f.userID})
	if err != nil || list.Total != 1 {
		t.Fatalf("expected one saved receipt, got %v / %v", list, err)
	}
	saved := list.Receipts[0]
	if saved.Status != entity.ReceiptStatusPending {
		t.Fatalf("expected pending after failed dispatch, got %s", saved.Status)
	}

	reprocess := NewReprocessReceiptUseCase(f.receipts, NewInlineDispatcher(f.processor()))

	_, err = reprocess.Execute(ctx, ReprocessReceiptInput{ReceiptID: saved.ID, UserID: uuid.New()})
	if !errors.Is(err, domainerror.ErrReceiptNotFound) {
		t.Fatalf("expected other users to get not found, got %v", err)
	}

	out, err := reprocess.Execute(ctx, ReprocessReceiptInput{ReceiptID: saved.ID, UserID: f.userID})
	if err != nil {
		t.Fatalf("reprocess: %v", err)
	}
	if out.Receipt.Status != entity.ReceiptStatusCompleted {
		t.Fatalf("expected completed, got %s", out.Receipt.Status)
	}

	_, err = reprocess.Execute(ctx, ReprocessReceiptInput{ReceiptID: saved.ID})
	if !errors.Is(err, domainerror.ErrReceiptNotPending) {
		t.Errorf("expected completed receipt to be rejected, got %v", err)
	}

	got, err := NewGetReceiptUseCase(f.receipts, f.lineItems).Execute(ctx, GetReceiptInput{ReceiptID: saved.ID, UserID: f.userID})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Receipt.Items) != 1 {
		t.Errorf("expected 1 item on receipt, got %d", len(got.Receipt.Items))
	}
}

func TestDispatchPending(t *testing.T) {
	f := newFixture(t)
	f.pendingReceipt(t)
	f.pendingReceipt(t)

	out, err := NewDispatchPendingUseCase(f.receipts, NewInlineDispatcher(f.processor())).Execute(context.Background(), DispatchPendingInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Dispatched != 2 || out.Errors != 0 {
		t.Errorf("expected 2 dispatched, got %+v", out)
	}

	pending, _ := f.receipts.FindByStatus(context.Background(), entity.ReceiptStatusPending, 0)
	if len(pending) != 0 {
		t.Errorf("expected no pending receipts left, got %d", len(pending))
	}
}

func TestDecodeReceiptPayload(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "quoted numbers", text: milkPayload},
		{name: "plain numbers", text: `{"total_amount":6,"items":[{"name":"Milk","quantity":2,"unit_price":3,"total_price":6,"category":"Dairy & Eggs"}]}`},
		{name: "empty items", text: `{"total_amount":"0","items":[]}`},
		{name: "array", text: `[1,2]`, wantErr: true},
		{name: "null items", text: `{"total_amount":"1","items":null}`, wantErr: true},
		{name: "missing category", text: `{"total_amount":"1","items":[{"name":"Milk","quantity":1,"unit_price":1,"total_price":1}]}`, wantErr: true},
		{name: "blank name", text: `{"total_amount":"1","items":[{"name":" ","quantity":1,"unit_price":1,"total_price":1,"category":"Other"}]}`, wantErr: true},
		{name: "price as word", text: `{"total_amount":"1","items":[{"name":"Milk","quantity":1,"unit_price":"cheap","total_price":1,"category":"Other"}]}`, wantErr: true},
		{name: "trailing document", text: `{"total_amount":"1","items":[]} {"total_amount":"2","items":[]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeReceiptPayload(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
