package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spend-smart/backend/internal/application/usecase/receipt"
	"github.com/spend-smart/backend/internal/integration/entrypoint/dto"
)

// ReceiptController handles receipt endpoints.
type ReceiptController struct {
	uploadUseCase    *receipt.UploadReceiptUseCase
	getUseCase       *receipt.GetReceiptUseCase
	listUseCase      *receipt.ListReceiptsUseCase
	reprocessUseCase *receipt.ReprocessReceiptUseCase
	maxImageBytes    int64
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(
	uploadUseCase *receipt.UploadReceiptUseCase,
	getUseCase *receipt.GetReceiptUseCase,
	listUseCase *receipt.ListReceiptsUseCase,
	reprocessUseCase *receipt.ReprocessReceiptUseCase,
	maxImageBytes int64,
) *ReceiptController {
	if maxImageBytes <= 0 {
		maxImageBytes = receipt.DefaultMaxImageBytes
	}
	return &ReceiptController{
		uploadUseCase:    uploadUseCase,
		getUseCase:       getUseCase,
		listUseCase:      listUseCase,
		reprocessUseCase: reprocessUseCase,
		maxImageBytes:    maxImageBytes,
	}
}

// Upload handles POST /receipts requests.
// Expects a multipart form with an "image" file and a "platform" field.
func (c *ReceiptController) Upload(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		badRequest(ctx, "Receipt image is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(ctx, "Failed to read receipt image", err)
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the use case to reject it.
	data, err := io.ReadAll(io.LimitReader(file, c.maxImageBytes+1))
	if err != nil {
		badRequest(ctx, "Failed to read receipt image", err)
		return
	}

	output, err := c.uploadUseCase.Execute(ctx.Request.Context(), receipt.UploadReceiptInput{
		UserID:   userID,
		Platform: ctx.PostForm("platform"),
		FileName: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReceiptResponse(output.Receipt))
}

// List handles GET /receipts requests.
func (c *ReceiptController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	limit, offset := parsePagination(ctx)
	output, err := c.listUseCase.Execute(ctx.Request.Context(), receipt.ListReceiptsInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptListResponse(output.Receipts, output.Total, output.Limit, output.Offset))
}

// Get handles GET /receipts/:id requests.
func (c *ReceiptController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	receiptID, ok := parseIDParam(ctx, "id", "receipt")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), receipt.GetReceiptInput{
		ReceiptID: receiptID,
		UserID:    userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptDetailResponse(output.Receipt))
}

// Reprocess handles POST /receipts/:id/reprocess requests.
func (c *ReceiptController) Reprocess(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	receiptID, ok := parseIDParam(ctx, "id", "receipt")
	if !ok {
		return
	}

	output, err := c.reprocessUseCase.Execute(ctx.Request.Context(), receipt.ReprocessReceiptInput{
		ReceiptID: receiptID,
		UserID:    userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToReceiptResponse(output.Receipt))
}
