package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/records"
	"github.com/iudanet/bizkeeper/internal/server/storage"
	"github.com/iudanet/bizkeeper/pkg/api"
)

//go:generate moq -out records_mock.go . RecordService

// RecordService коллекции authority
type RecordService interface {
	Apply(ctx context.Context, op api.Operation) (*records.Outcome, error)
	Snapshot(ctx context.Context, names []string) (map[string][]models.Record, error)
	Get(ctx context.Context, collection, id string) (models.Record, error)
	Stats(ctx context.Context) (map[string]int, error)
}

// CollectionsHandler отдает снимки коллекций по HTTP
type CollectionsHandler struct {
	logger  *slog.Logger
	records RecordService
	now     func() time.Time
}

// NewCollectionsHandler создает handler коллекций
func NewCollectionsHandler(logger *slog.Logger, records RecordService) *CollectionsHandler {
	return &CollectionsHandler{
		logger:  logger,
		records: records,
		now:     time.Now,
	}
}

// List обрабатывает GET /api/v1/collections?names=a,b
// Полный снимок перечисленных коллекций (все коллекции, если names пуст)
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var names []string
	for _, n := range strings.Split(r.URL.Query().Get("names"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	data, err := h.records.Snapshot(ctx, names)
	if err != nil {
		if errors.Is(err, records.ErrInvalidOperation) {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load collections", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.FullSyncResponse{
		Data:      data,
		Timestamp: h.now().UnixMilli(),
		Success:   true,
	}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/collections/{collection}/{id}
func (h *CollectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := r.PathValue("collection")
	id := r.PathValue("id")

	rec, err := h.records.Get(ctx, collection, id)
	switch {
	case err == nil:
		sendJSON(h.logger, w, rec, http.StatusOK)
	case errors.Is(err, records.ErrInvalidOperation):
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrRecordNotFound):
		sendError(h.logger, w, "record not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, "failed to get record", slog.String("collection", collection), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}

// Stats обрабатывает GET /api/v1/stats
func (h *CollectionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.records.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count records", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.StatsResponse{
		Counts:      counts,
		GeneratedAt: h.now().UnixMilli(),
	}, http.StatusOK)
}
