package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// DefaultMaxImageBytes caps uploads when no limit is configured.
const DefaultMaxImageBytes = 10 << 20

// imageContentTypes maps allowed extensions to their MIME type.
var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// UploadReceiptInput represents the input for uploading a receipt image.
type UploadReceiptInput struct {
	UserID   uuid.UUID
	Platform string
	FileName string
	Data     []byte
}

// UploadReceiptOutput represents the output of uploading a receipt.
type UploadReceiptOutput struct {
	Receipt *entity.Receipt
}

// UploadReceiptUseCase stores a receipt image, records a pending receipt and
// hands it to the dispatcher.
type UploadReceiptUseCase struct {
	receiptRepo   adapter.ReceiptRepository
	imageStore    adapter.ImageStore
	dispatcher    adapter.ReceiptDispatcher
	maxImageBytes int64
	now           func() time.Time
	logger        *slog.Logger
}

// NewUploadReceiptUseCase creates a new UploadReceiptUseCase instance.
func NewUploadReceiptUseCase(
	receiptRepo adapter.ReceiptRepository,
	imageStore adapter.ImageStore,
	dispatcher adapter.ReceiptDispatcher,
	maxImageBytes int64,
) *UploadReceiptUseCase {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &UploadReceiptUseCase{
		receiptRepo:   receiptRepo,
		imageStore:    imageStore,
		dispatcher:    dispatcher,
		maxImageBytes: maxImageBytes,
		now:           time.Now,
		logger:        slog.Default().With("usecase", "upload_receipt"),
	}
}

// Execute performs the upload.
func (uc *UploadReceiptUseCase) Execute(ctx context.Context, input UploadReceiptInput) (*UploadReceiptOutput, error) {
	platform := strings.TrimSpace(input.Platform)
	if platform == "" {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodePlatformRequired,
			"platform is required",
			domainerror.ErrPlatformRequired,
		)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeInvalidImageFormat,
			"image must be a jpg, jpeg or png file",
			domainerror.ErrInvalidImageFormat,
		)
	}

	if len(input.Data) == 0 {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeEmptyImage,
			"image is empty",
			domainerror.ErrEmptyImage,
		)
	}
	if int64(len(input.Data)) > uc.maxImageBytes {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeImageTooLarge,
			fmt.Sprintf("image must not exceed %d bytes", uc.maxImageBytes),
			domainerror.ErrImageTooLarge,
		)
	}

	receipt := entity.NewReceipt(input.UserID, "", contentType, platform)
	key := entity.ReceiptImageKey(input.UserID, receipt.ID, ext, uc.now())
	receipt.ImageKey = key

	if err := uc.imageStore.Put(ctx, key, input.Data, contentType); err != nil {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeReceiptStorageFailed,
			"failed to store receipt image",
			err,
		)
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	logger := uc.logger.With("receipt_id", receipt.ID, "user_id", input.UserID)
	logger.Info("receipt uploaded", "image_key", key)

	if err := uc.dispatcher.Dispatch(ctx, receipt.ID); err != nil {
		logger.Error("receipt dispatch failed", "error", err)
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeReceiptDispatchFailed,
			fmt.Sprintf("receipt %s was saved but could not be processed", receipt.ID),
			fmt.Errorf("%w: %w", domainerror.ErrReceiptDispatchFailed, err),
		)
	}

	reloaded, err := uc.receiptRepo.FindByID(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload receipt: %w", err)
	}

	return &UploadReceiptOutput{
		Receipt: reloaded,
	}, nil
}
