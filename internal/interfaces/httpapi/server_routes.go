package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.IngestPlayers)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/projection", handler.GetPlayerProjection)

	mux.HandleFunc("POST /v1/analysis/balance", handler.AnalyzeBalance)
	mux.HandleFunc("POST /v1/analysis/distribution", handler.AnalyzeDistribution)
	mux.HandleFunc("POST /v1/recommendations", handler.CreateRecommendations)

	mux.HandleFunc("POST /v1/teams", handler.SaveTeam)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamName}", handler.GetTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamName}", handler.DeleteTeam)
	mux.HandleFunc("GET /v1/teams/{teamName}/balance", handler.GetTeamBalance)
}
