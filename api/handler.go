package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gstparse/invoice-extract-service/internal/db"
	"github.com/gstparse/invoice-extract-service/internal/models"
	"github.com/gstparse/invoice-extract-service/internal/ocr"
	"github.com/gstparse/invoice-extract-service/internal/parser"
	"github.com/gstparse/invoice-extract-service/internal/scorer"
	"github.com/gstparse/invoice-extract-service/internal/storage"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	Version       = "1.0.0"
)

// Handler handles HTTP requests for invoice extraction.
type Handler struct {
	config *models.Config
	engine *ocr.Engine
	scorer *scorer.Scorer
	log    zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(config *models.Config, log zerolog.Logger) *Handler {
	return &Handler{
		config: config,
		engine: ocr.NewEngine(config.OCR, log),
		scorer: scorer.New(config.Scoring, log),
		log:    log,
	}
}

// SetupRoutes configures the HTTP routes.
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/extract-invoice", h.ExtractInvoice).Methods("POST")
	router.HandleFunc("/api/extractions", h.GetExtractions).Methods("GET")
	router.HandleFunc("/api/extraction/{id}", h.GetExtraction).Methods("GET")

	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// ExtractResponse is the output of one document extraction.
type ExtractResponse struct {
	Success     bool                   `json:"success"`
	Summary     *models.SaleSummary    `json:"summary,omitempty"`
	Confidence  float64                `json:"confidence"`
	Breakdown   *models.ScoreBreakdown `json:"breakdown,omitempty"`
	NeedsReview bool                   `json:"needs_review"`
	Error       string                 `json:"error,omitempty"`
	Duration    float64                `json:"duration"`
}

// ExtractInvoice handles POST /api/extract-invoice: multipart PDF upload,
// text acquisition, parse, score, persist.
func (h *Handler) ExtractInvoice(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		h.writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing 'document' file field")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	size, err := io.Copy(tmp, file)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}

	// Keep the source document if storage is configured.
	sourceURL := ""
	if storage.Client != nil {
		if _, err := tmp.Seek(0, io.SeekStart); err == nil {
			objectName := fmt.Sprintf("%s/%s", uuid.New().String(), header.Filename)
			url, err := storage.UploadDocument(r.Context(), objectName, tmp, size)
			if err != nil {
				h.log.Warn().Err(err).Msg("failed to store source document")
			} else {
				sourceURL = url
			}
		}
	}

	pageText, err := h.engine.PageText(tmp.Name())
	if err != nil {
		if errors.Is(err, ocr.ErrMultiplePages) {
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.log.Error().Err(err).Str("file", header.Filename).Msg("text acquisition failed")
		h.writeError(w, http.StatusInternalServerError, "failed to read document")
		return
	}

	docLog := h.log.With().Str("file", header.Filename).Logger()
	summary, err := parser.New(docLog).Parse(pageText)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	confidence, breakdown := h.scorer.Score(summary)
	needsReview := h.scorer.NeedsReview(confidence)

	if db.Pool != nil {
		h.persist(r, summary, confidence, needsReview, sourceURL)
	}

	json.NewEncoder(w).Encode(ExtractResponse{
		Success:     true,
		Summary:     summary,
		Confidence:  confidence,
		Breakdown:   &breakdown,
		NeedsReview: needsReview,
		Duration:    time.Since(start).Seconds(),
	})
}

func (h *Handler) persist(r *http.Request, summary *models.SaleSummary, confidence float64, needsReview bool, sourceURL string) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to serialize summary for persistence")
		return
	}

	status := db.StatusAccepted
	if needsReview {
		status = db.StatusNeedsReview
	}
	ext := &db.Extraction{
		Confidence:  confidence,
		Status:      status,
		SourceURL:   sourceURL,
		SummaryJSON: string(summaryJSON),
	}
	if summary.InvoiceNumber != nil {
		ext.InvoiceNumber = *summary.InvoiceNumber
	}
	if summary.InvoiceDate != nil {
		ext.InvoiceDate = *summary.InvoiceDate
	}
	if summary.TotalAmount != nil {
		ext.TotalAmount = *summary.TotalAmount
	}

	if err := db.SaveExtraction(r.Context(), ext); err != nil {
		h.log.Warn().Err(err).Msg("failed to persist extraction")
	}
}

// GetExtractions handles GET /api/extractions.
func (h *Handler) GetExtractions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if db.Pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	extractions, err := db.GetExtractions(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list extractions")
		h.writeError(w, http.StatusInternalServerError, "failed to list extractions")
		return
	}
	json.NewEncoder(w).Encode(extractions)
}

// GetExtraction handles GET /api/extraction/{id}.
func (h *Handler) GetExtraction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if db.Pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid extraction id")
		return
	}

	ext, err := db.GetExtraction(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "extraction not found")
		return
	}

	resp := ExtractionDetail{Extraction: ext}
	if storage.Client != nil && ext.SourceURL != "" {
		// stored as <bucket>/<object>
		if _, object, ok := strings.Cut(ext.SourceURL, "/"); ok {
			url, err := storage.PresignedURL(r.Context(), object, 15*time.Minute)
			if err != nil {
				h.log.Warn().Err(err).Str("source", ext.SourceURL).Msg("failed to presign source document")
			} else {
				resp.DownloadURL = url
			}
		}
	}
	json.NewEncoder(w).Encode(resp)
}

// ExtractionDetail is one persisted extraction plus, when the source document
// is kept in storage, a short-lived download link for it.
type ExtractionDetail struct {
	*db.Extraction
	DownloadURL string `json:"download_url,omitempty"`
}

// HealthResponse represents the health check response structure.
type HealthResponse struct {
	Status    string                   `json:"status"`
	Version   string                   `json:"version"`
	Timestamp string                   `json:"timestamp"`
	Uptime    string                   `json:"uptime"`
	Memory    MemoryStats              `json:"memory"`
	Services  map[string]ServiceStatus `json:"services"`
}

// MemoryStats represents memory usage statistics.
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency.
type ServiceStatus struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%d MB", m.Alloc/1024/1024),
			Total:     fmt.Sprintf("%d MB", m.TotalAlloc/1024/1024),
			System:    fmt.Sprintf("%d MB", m.Sys/1024/1024),
		},
		Services: map[string]ServiceStatus{
			"tesseract":   checkBinary("tesseract"),
			"pdftoppm":    checkBinary("pdftoppm"),
			"imagemagick": checkImageMagick(),
			"database":    {Available: db.Pool != nil},
			"storage":     {Available: storage.Client != nil},
		},
	}
	json.NewEncoder(w).Encode(response)
}

func checkBinary(name string) ServiceStatus {
	if _, err := exec.LookPath(name); err != nil {
		return ServiceStatus{Available: false, Error: err.Error()}
	}
	return ServiceStatus{Available: true}
}

func checkImageMagick() ServiceStatus {
	for _, name := range []string{"magick", "convert"} {
		if _, err := exec.LookPath(name); err == nil {
			return ServiceStatus{Available: true}
		}
	}
	return ServiceStatus{Available: false, Error: "neither magick nor convert found"}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ExtractResponse{Success: false, Error: msg})
}
