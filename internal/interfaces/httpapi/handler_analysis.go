package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/usecase"
)

func (h *Handler) AnalyzeBalance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeBalance")
	defer span.End()

	var req balanceRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.balanceService.AnalyzeBalance(ctx, usecase.SquadInput{
		TeamName:  req.TeamName,
		PlayerIDs: req.PlayerIDs,
		Records:   req.Players,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, balanceReportToDTO(ctx, report))
}

func (h *Handler) AnalyzeDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeDistribution")
	defer span.End()

	var req distributionRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	axis, err := roster.ParseAxis(req.Axis)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	distribution, err := h.balanceService.AnalyzeDistribution(ctx, usecase.SquadInput{
		TeamName:  req.TeamName,
		PlayerIDs: req.PlayerIDs,
		Records:   req.Players,
	}, axis)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, distributionToDTO(distribution))
}
