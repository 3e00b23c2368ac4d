package travel

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

const (
	msgNoSavedData   = "No saved travel data found."
	msgLoadSavedFail = "Error loading saved travel data. Please try again."
)

//go:embed templates/*.html
var templateFS embed.FS

// indexPage is the view model for templates/index.html.
type indexPage struct {
	Place       string
	Preferences string
	FormError   string
	Result      *types.RecommendationResult
	ShowSaved   bool
	Saved       []types.TravelRecord
	SavedError  string
}

type WebHandlerImpl struct {
	travelService TravelService
	tmpl          *template.Template
	logger        *slog.Logger
}

func NewWebHandlerImpl(travelService TravelService, logger *slog.Logger) (*WebHandlerImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &WebHandlerImpl{
		travelService: travelService,
		tmpl:          tmpl,
		logger:        logger,
	}, nil
}

// Index renders the empty query form.
func (h *WebHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, indexPage{})
}

// Recommend handles the "Get Travel Recommendations" form submission.
func (h *WebHandlerImpl) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelWebHandler").Start(r.Context(), "Recommend", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "WebRecommend"))

	if err := r.ParseForm(); err != nil {
		l.WarnContext(ctx, "Failed to parse form", slog.Any("error", err))
		span.RecordError(err)
		h.render(w, r, http.StatusBadRequest, indexPage{FormError: "Invalid form submission."})
		return
	}

	page := indexPage{
		Place:       strings.TrimSpace(r.PostFormValue("place")),
		Preferences: r.PostFormValue("preferences"),
	}

	result, err := h.travelService.Recommend(ctx, types.RecommendationRequest{
		Place:       page.Place,
		Preferences: page.Preferences,
	})
	if err != nil {
		span.SetStatus(codes.Error, "Recommendation rejected")
		if errors.Is(err, ErrPlaceRequired) {
			page.FormError = "Please enter the name of a place."
		} else {
			l.ErrorContext(ctx, "Recommendation flow failed", slog.Any("error", err))
			page.FormError = "Failed to generate recommendations."
		}
		h.render(w, r, http.StatusOK, page)
		return
	}

	page.Result = result
	span.SetStatus(codes.Ok, "Recommendation rendered")
	h.render(w, r, http.StatusOK, page)
}

// LoadSaved handles the "Load Saved Travel Data" form submission.
func (h *WebHandlerImpl) LoadSaved(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelWebHandler").Start(r.Context(), "LoadSaved", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/saved"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "WebLoadSaved"))

	page := indexPage{
		Place:       strings.TrimSpace(r.PostFormValue("place")),
		Preferences: r.PostFormValue("preferences"),
		ShowSaved:   true,
	}

	saved, err := h.travelService.LoadSaved(ctx)
	switch {
	case errors.Is(err, records.ErrStoreNotFound):
		page.SavedError = msgNoSavedData
	case err != nil:
		l.ErrorContext(ctx, "Failed to load saved travel data", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load saved travel data")
		page.SavedError = msgLoadSavedFail
	default:
		page.Saved = saved
	}

	h.render(w, r, http.StatusOK, page)
}

func (h *WebHandlerImpl) render(w http.ResponseWriter, r *http.Request, status int, page indexPage) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write page", slog.Any("error", err))
	}
}
