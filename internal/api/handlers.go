package api

import (
	"net/http"

	"github.com/wikirace/wikirace/internal/engine"
	"github.com/wikirace/wikirace/internal/telemetry"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// handleHealth returns the health status of the server.
// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// handleFindPath runs a search and returns the find_path envelope of
// spec.md §6. GET takes start/finish/strategy as query parameters; POST
// takes the same fields as a JSON body.
// GET|POST /api/v1/path
func (s *Server) handleFindPath(c *gin.Context) {
	var req PathRequest
	var bindErr error
	if c.Request.Method == http.MethodPost {
		bindErr = c.ShouldBindJSON(&req)
	} else {
		bindErr = c.ShouldBindQuery(&req)
	}
	if bindErr != nil {
		RespondWithError(c, NewAPIError("invalid_request", bindErr.Error(), http.StatusBadRequest))
		return
	}

	if req.Start == "" {
		RespondWithMissingParam(c, "start")
		return
	}
	if req.Finish == "" {
		RespondWithMissingParam(c, "finish")
		return
	}

	strategy := engine.Strategy(req.Strategy)
	switch strategy {
	case "", engine.StrategyBFS, engine.StrategyDFS, engine.StrategyUniform,
		engine.StrategyAStar, engine.StrategyBidirectional:
	default:
		RespondWithInvalidParam(c, "strategy", "must be one of bfs, dfs, uniform, a_star, bidirectional")
		return
	}

	result, err := s.engine.Search(c.Request.Context(), req.Start, req.Finish, strategy)

	resp := PathResponse{
		Logs:     nil,
		Strategy: string(strategy),
	}
	if result != nil {
		resp.Logs = result.Logs
		resp.ElapsedSeconds = result.Elapsed.Seconds()
		resp.Discovered = result.Discovered
		resp.Strategy = string(result.Strategy)
	}

	record := telemetry.Record{
		Start:           req.Start,
		Finish:          req.Finish,
		ElapsedSeconds:  resp.ElapsedSeconds,
		DiscoveredCount: resp.Discovered,
		Strategy:        resp.Strategy,
	}

	if err != nil {
		resp.Found = false
		resp.Error = err.Error()
		resp.Kind = "internal"
		record.Outcome = telemetry.OutcomeError

		if searchErr, ok := err.(*engine.SearchError); ok {
			resp.Kind = string(searchErr.Kind)
			switch searchErr.Kind {
			case engine.ErrTimeout:
				record.Outcome = telemetry.OutcomeTimeout
			case engine.ErrNotFound:
				record.Outcome = telemetry.OutcomeNotFound
			}
		}
		if result != nil {
			record.DepthReached = result.DepthReached
		}

		s.metrics.Record(record)
		c.JSON(statusForKind(resp.Kind), resp)
		return
	}

	resp.Found = true
	resp.Path = result.Path
	record.Outcome = telemetry.OutcomeFound
	record.DepthReached = result.DepthReached
	s.metrics.Record(record)

	c.JSON(http.StatusOK, resp)
}

// handleCacheStats reports backing-store utilization.
// GET /api/v1/cache/stats
func (s *Server) handleCacheStats(c *gin.Context) {
	if s.store == nil {
		RespondWithError(c, NewAPIError("not_configured", "no backing store is configured", http.StatusServiceUnavailable))
		return
	}

	stats, err := s.store.Stats()
	if err != nil {
		RespondWithError(c, NewAPIError("internal_error", err.Error(), http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, CacheStatsResponse{
		Entries:   stats.Entries,
		SizeBytes: stats.SizeBytes,
		SizeHuman: humanize.Bytes(uint64(stats.SizeBytes)),
	})
}
