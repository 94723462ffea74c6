// =============================================================================
// Purchase Order Generator - Read API Handlers
// =============================================================================
//
// Every handler re-reads the served CSV through the csvparser package.
//
// ERROR RESPONSES:
//   404 - CSV file not found, or unknown PO number
//   400 - CSV file is empty
//   422 - Invalid query parameters (per-field messages)
//   500 - The CSV could not be read or regenerated
//
// =============================================================================

package server

import (
	"archive/zip"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-data-generator/internal/csvparser"
	"github.com/ginjaninja78/po-data-generator/internal/generator"
	"github.com/ginjaninja78/po-data-generator/internal/runner"
)

const (
	columnVendor     = generator.ColVendor
	columnDepartment = generator.ColDepartment
	columnStatus     = generator.ColApprovalStatus

	defaultLimit = 100
)

// ordersQuery holds the /api/orders parameters.
type ordersQuery struct {
	Skip   int    `query:"skip" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=1,lte=1000"`
	Vendor string `query:"vendor"`
	Status string `query:"status"`
}

// =============================================================================
// DATA ACCESS
// =============================================================================

// load reads the served CSV under the read lock.
func (s *Server) load() (*csvparser.CSVData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return csvparser.Parse(s.csvPath)
}

// loadOrFail loads the CSV, writing an error response on failure.
func (s *Server) loadOrFail(w http.ResponseWriter) (*csvparser.CSVData, bool) {
	data, err := s.load()
	switch {
	case err == nil:
		return data, true
	case errors.Is(err, os.ErrNotExist):
		writeError(w, http.StatusNotFound, "CSV file not found. Run pogen first.")
	case errors.Is(err, csvparser.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, csvparser.ErrEmptyFile.Error())
	default:
		s.log.Error("failed to read csv", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error reading CSV file")
	}
	return nil, false
}

// filterOrders applies the case-insensitive vendor and status filters.
func filterOrders(data *csvparser.CSVData, vendor, status string) []map[string]string {
	vendor = strings.ToLower(vendor)
	status = strings.ToLower(status)

	return csvparser.FilterRows(data, func(row map[string]string) bool {
		if vendor != "" && !strings.Contains(strings.ToLower(row[columnVendor]), vendor) {
			return false
		}
		if status != "" && !strings.Contains(strings.ToLower(row[columnStatus]), status) {
			return false
		}
		return true
	})
}

// toOrder converts a CSV row to a JSON object with numeric columns as numbers.
func toOrder(row map[string]string) map[string]any {
	order := make(map[string]any, len(row))
	for k, v := range row {
		order[k] = v
		switch k {
		case generator.ColQuantity:
			if n, err := strconv.Atoi(v); err == nil {
				order[k] = n
			}
		case generator.ColUnitPrice, generator.ColTotalAmount, generator.ColTaxAmount, generator.ColGrandTotal:
			if d, err := decimal.NewFromString(v); err == nil {
				order[k] = d.InexactFloat64()
			}
		}
	}
	return order
}

func toOrders(rows []map[string]string) []map[string]any {
	orders := make([]map[string]any, len(rows))
	for i, row := range rows {
		orders[i] = toOrder(row)
	}
	return orders
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Purchase Order API",
		"endpoints": map[string]string{
			"all_orders":   "/api/orders",
			"order_by_id":  "/api/orders/{po_number}",
			"download_csv": "/api/download",
			"statistics":   "/api/statistics",
			"filter":       "/api/orders?vendor=&status=",
			"vendors":      "/api/vendors",
			"departments":  "/api/departments",
			"export":       "/api/export",
			"metrics":      "/metrics",
		},
	})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := make(map[string]string)
	query := ordersQuery{
		Skip:   queryInt(q, "skip", 0, fields),
		Limit:  queryInt(q, "limit", defaultLimit, fields),
		Vendor: q.Get("vendor"),
		Status: q.Get("status"),
	}
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}
	if err := validate.Struct(query); err != nil {
		writeValidationError(w, validationFields(err))
		return
	}

	data, ok := s.loadOrFail(w)
	if !ok {
		return
	}

	rows := filterOrders(data, query.Vendor, query.Status)
	total := len(rows)

	start := min(query.Skip, total)
	end := start + min(query.Limit, total-start)
	page := rows[start:end]

	writeJSON(w, http.StatusOK, map[string]any{
		"total":  total,
		"skip":   query.Skip,
		"limit":  query.Limit,
		"count":  len(page),
		"orders": toOrders(page),
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	po := chi.URLParam(r, "po")

	data, ok := s.loadOrFail(w)
	if !ok {
		return
	}

	for _, row := range data.Rows {
		if row[generator.ColPONumber] == po {
			writeJSON(w, http.StatusOK, map[string]any{"order": toOrder(row)})
			return
		}
	}

	writeError(w, http.StatusNotFound, fmt.Sprintf("PO Number %s not found", po))
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	data, ok := s.loadOrFail(w)
	if !ok {
		return
	}

	total := decimal.Zero
	for _, v := range csvparser.GetColumnByHeader(data, generator.ColGrandTotal) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}

	average := decimal.Zero
	if data.RowCount > 0 {
		average = total.Div(decimal.NewFromInt(int64(data.RowCount)))
	}

	byStatus := csvparser.CountValues(data, columnStatus)

	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":              data.RowCount,
		"total_amount":              total.Round(generator.MoneyPlaces).InexactFloat64(),
		"average_order_value":       average.Round(generator.MoneyPlaces).InexactFloat64(),
		"by_status":                 byStatus,
		"by_vendor":                 csvparser.CountValues(data, columnVendor),
		"by_department":             csvparser.CountValues(data, columnDepartment),
		"by_currency":               csvparser.CountValues(data, generator.ColCurrency),
		"approval_status_breakdown": byStatus,
	})
}

// handleUnique lists the distinct values of column under key.
func (s *Server) handleUnique(column, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		data, ok := s.loadOrFail(w)
		if !ok {
			return
		}
		values := csvparser.GetUniqueValues(data, column)
		writeJSON(w, http.StatusOK, map[string]any{key: values, "count": len(values)})
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, ok := s.loadOrFail(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	rows := filterOrders(data, q.Get("vendor"), q.Get("status"))

	writeJSON(w, http.StatusOK, map[string]any{
		"exported_records": len(rows),
		"data":             toOrders(rows),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, err := os.ReadFile(s.csvPath)
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "CSV file not found. Run pogen first.")
		return
	}
	if err != nil {
		s.log.Error("failed to read csv", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error reading CSV file")
		return
	}

	name := filepath.Base(s.csvPath)

	if r.URL.Query().Get("archive") != "zip" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = w.Write(content)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", strings.TrimSuffix(name, filepath.Ext(name))+".zip"))

	zw := zip.NewWriter(w)
	f, err := zw.Create(name)
	if err != nil {
		s.log.Error("failed to create zip entry", zap.Error(err))
		return
	}
	if _, err := f.Write(content); err != nil {
		s.log.Error("failed to write zip entry", zap.Error(err))
		return
	}
	if err := zw.Close(); err != nil {
		s.log.Error("failed to close zip", zap.Error(err))
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var args []string
	if raw := r.URL.Query().Get("count"); raw != "" {
		args = []string{raw}
	}

	count, err := runner.ResolveCount(args, s.defaultCount)
	if err != nil {
		writeValidationError(w, map[string]string{"count": err.Error()})
		return
	}
	if s.maxCount > 0 && count > s.maxCount {
		writeValidationError(w, map[string]string{
			"count": fmt.Sprintf("Must be less than or equal to %d", s.maxCount),
		})
		return
	}

	s.mu.Lock()
	result, err := s.generate(count)
	if err == nil {
		s.csvPath = result.OutputFile
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("failed to regenerate csv", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error generating CSV file")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"run_id":      result.RunID,
		"output_file": result.OutputFile,
		"records":     result.Records,
		"seed":        strconv.FormatUint(result.Seed, 10),
	})
}
