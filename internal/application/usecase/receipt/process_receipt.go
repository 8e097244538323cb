// Package receipt contains the receipt ingestion use cases.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// Failure kinds recorded in a failed receipt's payload.
const (
	FailureKindStorage     = "storage"
	FailureKindMalformed   = "malformed"
	FailureKindPersistence = "persistence"
)

// ProcessReceiptInput represents the input for processing a receipt.
type ProcessReceiptInput struct {
	ReceiptID uuid.UUID
}

// ProcessReceiptOutput represents the output of processing a receipt.
// Failure is set when the receipt ended in the failed state.
type ProcessReceiptOutput struct {
	Receipt *entity.Receipt
	Items   []*entity.LineItem
	Failure error
}

// ProcessReceiptUseCase drives a pending receipt to completed or failed.
type ProcessReceiptUseCase struct {
	receiptRepo  adapter.ReceiptRepository
	lineItemRepo adapter.LineItemRepository
	categoryRepo adapter.CategoryRepository
	imageStore   adapter.ImageStore
	extractor    adapter.ExtractionClient
	transactor   adapter.Transactor
	fallback     *entity.Category
	logger       *slog.Logger
}

// NewProcessReceiptUseCase creates a new ProcessReceiptUseCase instance.
// fallback must be an existing category; see category.EnsureFallbackCategory.
func NewProcessReceiptUseCase(
	receiptRepo adapter.ReceiptRepository,
	lineItemRepo adapter.LineItemRepository,
	categoryRepo adapter.CategoryRepository,
	imageStore adapter.ImageStore,
	extractor adapter.ExtractionClient,
	transactor adapter.Transactor,
	fallback *entity.Category,
) *ProcessReceiptUseCase {
	return &ProcessReceiptUseCase{
		receiptRepo:  receiptRepo,
		lineItemRepo: lineItemRepo,
		categoryRepo: categoryRepo,
		imageStore:   imageStore,
		extractor:    extractor,
		transactor:   transactor,
		fallback:     fallback,
		logger:       slog.Default().With("usecase", "process_receipt"),
	}
}

// Execute claims the receipt and runs extraction.
//
// Extraction, decode and write failures do not return an error: they move the
// receipt to failed and are reported through Output.Failure. An error is
// returned when the receipt was not pending, could not be loaded after the
// claim (it is still marked failed) or its state could not be recorded at all.
func (uc *ProcessReceiptUseCase) Execute(ctx context.Context, input ProcessReceiptInput) (*ProcessReceiptOutput, error) {
	logger := uc.logger.With("receipt_id", input.ReceiptID)

	claimed, err := uc.receiptRepo.MarkProcessing(ctx, input.ReceiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim receipt: %w", err)
	}
	if !claimed {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeReceiptNotPending,
			"receipt is already being processed or finished",
			domainerror.ErrReceiptNotPending,
		)
	}

	// From here on the receipt is ours; every error must leave it failed.
	receipt, err := uc.receiptRepo.FindByID(ctx, input.ReceiptID)
	if err != nil {
		err = fmt.Errorf("failed to load receipt: %w", err)
		if recErr := uc.recordFailure(ctx, logger, input.ReceiptID, persistenceFailure(err)); recErr != nil {
			return nil, recErr
		}
		return nil, err
	}

	items, procErr := uc.run(ctx, receipt)
	if procErr != nil {
		if err := uc.recordFailure(ctx, logger, receipt.ID, procErr); err != nil {
			return nil, err
		}
	} else {
		logger.Info("receipt processed", "items", len(items))
	}

	reloaded, err := uc.receiptRepo.FindByID(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload receipt: %w", err)
	}

	output := &ProcessReceiptOutput{
		Receipt: reloaded,
		Items:   items,
	}
	if procErr != nil {
		output.Items = nil
		output.Failure = procErr.err
	}
	return output, nil
}

func (uc *ProcessReceiptUseCase) recordFailure(ctx context.Context, logger *slog.Logger, id uuid.UUID, procErr *processingError) error {
	logger.Warn("receipt processing failed", "error", procErr.err, "kind", procErr.payload.Kind)

	ok, err := uc.receiptRepo.MarkFailed(ctx, id, procErr.payload.encode())
	if err != nil {
		return fmt.Errorf("failed to record receipt failure: %w", err)
	}
	if !ok {
		logger.Warn("receipt left processing state before failure was recorded")
	}
	return nil
}

// processingError pairs the cause with the diagnostic stored on the receipt.
type processingError struct {
	err     error
	payload failurePayload
}

func (uc *ProcessReceiptUseCase) run(ctx context.Context, receipt *entity.Receipt) ([]*entity.LineItem, *processingError) {
	image, err := uc.imageStore.Get(ctx, receipt.ImageKey)
	if err != nil {
		return nil, &processingError{
			err: err,
			payload: failurePayload{
				Error: fmt.Sprintf("failed to read receipt image: %v", err),
				Kind:  FailureKindStorage,
				Code:  string(domainerror.ErrCodeReceiptStorageFailed),
			},
		}
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceFailure(fmt.Errorf("failed to load categories: %w", err))
	}

	raw, err := uc.extractor.Extract(ctx, adapter.ExtractionRequest{
		Kind:             adapter.PromptReceiptToItems,
		Image:            image,
		ImageMIMEType:    receipt.ImageContentType,
		Categories:       entity.CategoryNames(categories),
		FallbackCategory: uc.fallback.Name,
	})
	if err != nil {
		return nil, extractionFailure(err)
	}

	extracted, err := decodeReceiptPayload(raw.Text)
	if err != nil {
		return nil, &processingError{
			err: domainerror.NewMalformedExtractionError(
				domainerror.ErrCodeExtractionSchema,
				"extraction response does not match the receipt schema",
				raw.Text,
				err,
			),
			payload: failurePayload{
				Error: err.Error(),
				Kind:  FailureKindMalformed,
				Code:  string(domainerror.ErrCodeExtractionSchema),
				Raw:   raw.Text,
			},
		}
	}

	items := uc.materialize(receipt, extracted, categories)

	err = uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if len(items) > 0 {
			if err := uc.lineItemRepo.CreateBatch(txCtx, items); err != nil {
				return fmt.Errorf("failed to save line items: %w", err)
			}
		}

		ok, err := uc.receiptRepo.MarkCompleted(txCtx, receipt.ID, extracted.TotalAmount, raw.Text)
		if err != nil {
			return fmt.Errorf("failed to complete receipt: %w", err)
		}
		if !ok {
			return domainerror.NewReceiptError(
				domainerror.ErrCodeReceiptStateConflict,
				"receipt left processing state before completion",
				domainerror.ErrReceiptStateConflict,
			)
		}
		return nil
	})
	if err != nil {
		failure := persistenceFailure(err)
		failure.payload.Raw = raw.Text
		return nil, failure
	}

	return items, nil
}

// materialize maps extracted lines to line items, matching categories by exact
// name and falling back to the fallback category.
func (uc *ProcessReceiptUseCase) materialize(receipt *entity.Receipt, extracted *extractedReceipt, categories []*entity.Category) []*entity.LineItem {
	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}

	platform := extracted.Platform
	if platform == "" {
		platform = receipt.Platform
	}

	receiptID := receipt.ID
	items := make([]*entity.LineItem, 0, len(extracted.Items))
	for _, line := range extracted.Items {
		category, ok := byName[line.Category]
		if !ok {
			category = uc.fallback
		}
		categoryID := category.ID

		items = append(items, entity.NewLineItem(
			receipt.UserID,
			&receiptID,
			line.Name,
			&categoryID,
			line.UnitPrice,
			line.Quantity,
			entity.DefaultUnit,
			platform,
		))
	}
	return items
}

func extractionFailure(err error) *processingError {
	payload := failurePayload{
		Error: err.Error(),
		Kind:  string(domainerror.ExtractionErrorTransport),
	}

	var extErr *domainerror.ExtractionError
	if errors.As(err, &extErr) {
		payload.Kind = string(extErr.Kind)
		payload.Code = string(extErr.Code)
		payload.Raw = extErr.Raw
	}

	return &processingError{err: err, payload: payload}
}

func persistenceFailure(err error) *processingError {
	return &processingError{
		err: err,
		payload: failurePayload{
			Error: err.Error(),
			Kind:  FailureKindPersistence,
		},
	}
}
