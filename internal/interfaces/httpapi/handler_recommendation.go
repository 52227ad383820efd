package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/scoutlab/squadscope/internal/usecase"
)

func (h *Handler) CreateRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRecommendations")
	defer span.End()

	var req recommendationsRequest
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

	report, err := h.recommendationService.Recommend(ctx, usecase.RecommendationInput{
		TeamName:     req.TeamName,
		PlayerIDs:    req.PlayerIDs,
		Records:      req.Players,
		TargetBucket: req.TargetBucket,
		TopK:         req.TopK,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendationReportToDTO(ctx, report))
}
