package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/gridreport/internal/logger"
	"github.com/locvowork/gridreport/pkg/gridreport"
)

// ExportRequest is the JSON body of an export call: a list of sheets plus
// optional per-sheet knob vectors (broadcast over the sheet list).
type ExportRequest struct {
	Filename string         `json:"filename"`
	Sheets   []SheetRequest `json:"sheets"`
	Options  OptionsRequest `json:"options"`
}

// SheetRequest is one worksheet's data: column names plus row-major values.
type SheetRequest struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// OptionsRequest mirrors the export knobs. Empty vectors keep the defaults.
type OptionsRequest struct {
	StartRow     []int    `json:"start_row"`
	StartCol     []string `json:"start_col"`
	Gridlines    []bool   `json:"gridlines"`
	ColNames     []bool   `json:"col_names"`
	RowNames     []bool   `json:"row_names"`
	AsTable      []bool   `json:"as_table"`
	WithFilter   []bool   `json:"with_filter"`
	FreezeHeader []bool   `json:"freeze_header"`
	AutoWidth    []bool   `json:"auto_width"`
	Border       []string `json:"border"`
	BorderColour []string `json:"border_colour"`
	BorderStyle  []string `json:"border_style"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ExportHandler turns JSON payloads into xlsx attachments.
type ExportHandler struct {
	defaults gridreport.Defaults
}

func NewExportHandler(defaults gridreport.Defaults) *ExportHandler {
	return &ExportHandler{defaults: defaults}
}

func (h *ExportHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ExportHandler) ExportHandler(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body", Error: err.Error()})
	}
	if len(req.Sheets) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "No sheets supplied"})
	}

	sheets := make([]gridreport.Sheet, len(req.Sheets))
	for i, sr := range req.Sheets {
		sheets[i] = gridreport.Sheet{
			Name: sr.Name,
			Data: &gridreport.Dataset{Columns: sr.Columns, Rows: sr.Rows},
		}
	}

	opts := buildOptions(h.defaults, req.Options)

	filename := req.Filename
	if filename == "" {
		filename = "export.xlsx"
	}

	// The workbook is built into a buffer first so a failed export answers
	// with plain JSON, not an error body under attachment headers.
	ctx := c.Request().Context()
	var buf bytes.Buffer
	if err := gridreport.WriteWorkbookTo(ctx, &buf, sheets, opts...); err != nil {
		logger.ErrorLog(ctx, "export failed", err)
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid export request", Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Export failed", Error: err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func buildOptions(defaults gridreport.Defaults, o OptionsRequest) []gridreport.ExportOption {
	opts := []gridreport.ExportOption{gridreport.WithDefaults(defaults)}

	if len(o.StartRow) > 0 {
		opts = append(opts, gridreport.WithStartRow(o.StartRow...))
	}
	if len(o.StartCol) > 0 {
		cols := make([]interface{}, len(o.StartCol))
		for i, c := range o.StartCol {
			cols[i] = c
		}
		opts = append(opts, gridreport.WithStartCol(cols...))
	}
	if len(o.Gridlines) > 0 {
		opts = append(opts, gridreport.WithGridlines(o.Gridlines...))
	}
	if len(o.ColNames) > 0 {
		opts = append(opts, gridreport.WithColNames(o.ColNames...))
	}
	if len(o.RowNames) > 0 {
		opts = append(opts, gridreport.WithRowNames(o.RowNames...))
	}
	if len(o.AsTable) > 0 {
		opts = append(opts, gridreport.AsTable(o.AsTable...))
	}
	if len(o.WithFilter) > 0 {
		opts = append(opts, gridreport.WithFilter(o.WithFilter...))
	}
	if len(o.FreezeHeader) > 0 {
		opts = append(opts, gridreport.WithFreezeHeader(o.FreezeHeader...))
	}
	if len(o.AutoWidth) > 0 {
		opts = append(opts, gridreport.WithAutoWidth(o.AutoWidth...))
	}
	if len(o.Border) > 0 {
		opts = append(opts, gridreport.WithBorders(o.Border...))
	}
	if len(o.BorderColour) > 0 {
		opts = append(opts, gridreport.WithBorderColour(o.BorderColour...))
	}
	if len(o.BorderStyle) > 0 {
		opts = append(opts, gridreport.WithBorderStyle(o.BorderStyle...))
	}
	return opts
}

func isValidationError(err error) bool {
	var (
		paramErr  *gridreport.InvalidParameterError
		coordErr  *gridreport.InvalidCoordinateError
		shapeErr  *gridreport.UnsupportedShapeError
		nameErr   *gridreport.SheetNameTooLongError
		borderErr *gridreport.InvalidBorderModeError
	)
	return errors.As(err, &paramErr) ||
		errors.As(err, &coordErr) ||
		errors.As(err, &shapeErr) ||
		errors.As(err, &nameErr) ||
		errors.As(err, &borderErr)
}
