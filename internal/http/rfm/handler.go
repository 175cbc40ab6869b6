package rfm

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rfm/internal/config"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
	"github.com/MrJamesThe3rd/rfm/internal/importer/onlineretail"
	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

const (
	outputJSON = "json"
	outputCSV  = "csv"
	outputIDs  = "ids"
)

type Handler struct {
	importSvc *importer.Service
	maxUpload int64
}

// NewHandler serves segmentation runs over uploads of at most maxUploadMB megabytes.
func NewHandler(importSvc *importer.Service, maxUploadMB int64) *Handler {
	return &Handler{
		importSvc: importSvc,
		maxUpload: maxUploadMB << 20,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
	r.Get("/segments", h.segments)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	asOf, err := config.ParseAsOf(r.FormValue("as_of"))
	if err != nil {
		http.Error(w, "as_of: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	output := r.FormValue("output")
	if output == "" {
		output = outputJSON
	}

	var segment rfm.Segment

	switch output {
	case outputJSON, outputCSV:
	case outputIDs:
		segment = rfm.Segment(r.FormValue("segment"))
		if !rfm.KnownSegment(segment) {
			http.Error(w, fmt.Sprintf("unknown segment %q", segment), http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unknown output %q", output), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), importStatus(err))
		return
	}

	res, err := rfm.Run(txs, asOf)
	if err != nil {
		http.Error(w, err.Error(), runStatus(err))
		return
	}

	switch output {
	case outputCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="rfm.csv"`)

		if err := rfm.WriteCSV(w, res.Customers); err != nil {
			slog.Error("failed to write csv", "run_id", res.RunID, "error", err)
		}
	case outputIDs:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, segment))

		if err := rfm.WriteSegmentIDs(w, res.Customers, segment); err != nil {
			slog.Error("failed to write segment ids", "run_id", res.RunID, "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(toRunResponse(res, asOf.Format(time.DateOnly))); err != nil {
			slog.Error("failed to encode response", "run_id", res.RunID, "error", err)
		}
	}
}

func (h *Handler) segments(w http.ResponseWriter, _ *http.Request) {
	rules := rfm.Rules()

	resp := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, ruleResponse{Pattern: rule.Pattern(), Segment: rule.Segment})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func importStatus(err error) int {
	if errors.Is(err, onlineretail.ErrNoHeader) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

func runStatus(err error) int {
	switch {
	case errors.Is(err, rfm.ErrNoCustomers),
		errors.Is(err, rfm.ErrDegenerateBins),
		errors.Is(err, rfm.ErrFutureInvoice),
		errors.Is(err, rfm.ErrMissingAsOf):
		return http.StatusUnprocessableEntity
	default:
		slog.Error("segmentation failed", "error", err)
		return http.StatusInternalServerError
	}
}
