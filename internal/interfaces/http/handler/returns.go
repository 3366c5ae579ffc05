package handler

import (
	tradeapp "github.com/dukkan/backoffice/internal/application/trade"
	"github.com/dukkan/backoffice/internal/infrastructure/importer"
	"github.com/gin-gonic/gin"
)

// ReturnsHandler receives carrier return sheets and reconciles them
type ReturnsHandler struct {
	BaseHandler
	returnsService *tradeapp.ReturnsService
}

// NewReturnsHandler creates a new ReturnsHandler
func NewReturnsHandler(returnsService *tradeapp.ReturnsService) *ReturnsHandler {
	return &ReturnsHandler{returnsService: returnsService}
}

// UploadBatchRequest selects the sheet layout. Column letters address the
// phone cell and either a precomputed cost cell or the two cost components.
type UploadBatchRequest struct {
	PhoneColumn    string `form:"phone_column"`
	CostColumn     string `form:"cost_column"`
	ChargedColumn  string `form:"charged_column"`
	RefundedColumn string `form:"refunded_column"`
	NoHeader       bool   `form:"no_header"`
}

// UploadBatch godoc
// @Summary      Upload a returns sheet
// @Description  Matches each row to an order by trailing phone digits, marks it returned and records the return cost. Rows without a match are tallied, not fatal; a sheet with no plausible phone at all is rejected before any write.
// @Tags         returns
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Param        phone_column formData string false "Phone column letter (default A)"
// @Param        cost_column formData string false "Precomputed cost column letter"
// @Param        charged_column formData string false "Charged amount column letter (default D)"
// @Param        refunded_column formData string false "Refunded amount column letter (default E)"
// @Success      200 {object} dto.Response{data=tradeapp.BatchResult}
// @Failure      400 {object} dto.Response
// @Router       /returns/upload [post]
func (h *ReturnsHandler) UploadBatch(c *gin.Context) {
	var req UploadBatchRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid form parameters")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	columns := importer.DefaultReturnsColumns()
	if req.PhoneColumn != "" {
		columns.Phone = req.PhoneColumn
	}
	if req.CostColumn != "" {
		columns.Cost = req.CostColumn
	}
	if req.ChargedColumn != "" {
		columns.Charged = req.ChargedColumn
	}
	if req.RefundedColumn != "" {
		columns.Refunded = req.RefundedColumn
	}

	opts := []importer.ReaderOption{importer.WithColumns(columns)}
	if req.NoHeader {
		opts = append(opts, importer.WithoutHeader())
	}

	records, err := importer.NewReturnsCSVReader(opts...).Parse(file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.returnsService.ProcessBatch(c.Request.Context(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
