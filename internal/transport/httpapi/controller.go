package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wzhuang/portfolio_watcher/internal/model"
	"github.com/wzhuang/portfolio_watcher/utils"
)

type PortfolioService interface {
	Snapshot() model.PortfolioSnapshot
	Refresh(ctx context.Context, force bool) error
	UpdateAPIKey(ctx context.Context, apiKey string) error
}

type ReportGenerator interface {
	Generate(ctx context.Context, snapshot model.PortfolioSnapshot) (fileBytes []byte, fileExtension string, err error)
}

type Controller struct {
	portfolioSrv    PortfolioService
	reportGenerator ReportGenerator
}

func NewController(portfolioSrv PortfolioService, reportGenerator ReportGenerator) *Controller {
	return &Controller{portfolioSrv: portfolioSrv, reportGenerator: reportGenerator}
}

func (c *Controller) getPortfolio(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, c.portfolioSrv.Snapshot())
}

// postRefresh is the manual trigger, always forced. The refresh runs
// synchronously so the response already carries the repriced snapshot.
func (c *Controller) postRefresh(w http.ResponseWriter, r *http.Request) {
	_ = c.portfolioSrv.Refresh(r.Context(), true)

	respondJSON(r.Context(), w, http.StatusOK, c.portfolioSrv.Snapshot())
}

type updateKeyRequest struct {
	ApiKey string `json:"apiKey"`
}

func (c *Controller) putSettingsKey(w http.ResponseWriter, r *http.Request) {
	rqID := utils.GetRequestIDFromCtx(r.Context())

	req := updateKeyRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("can't decode update key request", slog.String("rqID", rqID), slog.String("err", err.Error()))
		respondJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.ApiKey == "" {
		respondJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"error": "apiKey is required"})
		return
	}

	_ = c.portfolioSrv.UpdateAPIKey(r.Context(), req.ApiKey)

	respondJSON(r.Context(), w, http.StatusOK, c.portfolioSrv.Snapshot())
}

func (c *Controller) getReport(w http.ResponseWriter, r *http.Request) {
	rqID := utils.GetRequestIDFromCtx(r.Context())

	fileBytes, fileExtension, err := c.reportGenerator.Generate(r.Context(), c.portfolioSrv.Snapshot())
	if err != nil {
		slog.Error("can't generate report", slog.String("rqID", rqID), slog.String("err", err.Error()))
		respondJSON(r.Context(), w, http.StatusInternalServerError, map[string]string{"error": "report generation failed"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio`+fileExtension+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fileBytes)
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("can't encode response", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
}
