package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mediagent/internal/agent"
	"mediagent/internal/history"
)

const defaultHistoryLimit = 20

// AgentHandler exposes the pipeline and its history store over HTTP.
type AgentHandler struct {
	orch   *agent.Orchestrator
	store  history.Store
	logger *log.Logger
}

func NewAgentHandler(orch *agent.Orchestrator, store history.Store) *AgentHandler {
	return &AgentHandler{
		orch:   orch,
		store:  store,
		logger: log.New(log.Writer(), "[API] ", log.LstdFlags),
	}
}

func (h *AgentHandler) Register(e *echo.Echo) {
	e.POST("/run_task", h.RunTask)
	e.GET("/history", h.History)
	e.GET("/history_index", h.HistoryIndex)
	e.DELETE("/session", h.DeleteSession)
}

type runTaskRequest struct {
	Task string `json:"task"`
}

// RunTask executes the full pipeline for one task and returns the run log.
func (h *AgentHandler) RunTask(c echo.Context) error {
	var req runTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Task) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task is required")
	}
	run, err := h.orch.Run(c.Request().Context(), req.Task)
	if err != nil {
		// Context cancellation is the only error Run surfaces; the run log
		// still describes everything that happened before the cut-off.
		h.logger.Printf("run %s interrupted: %v", run.RunID, err)
	}
	return c.JSON(http.StatusOK, run)
}

// History returns recent assistant answers for a session, addressed either by
// the original task text or by its precomputed hash.
func (h *AgentHandler) History(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "history store not available")
	}
	sessionKey := strings.TrimSpace(c.QueryParam("task_hash"))
	if sessionKey == "" {
		task := c.QueryParam("task")
		if strings.TrimSpace(task) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "task or task_hash is required")
		}
		sessionKey = history.SessionKey(task)
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	answers, err := h.store.History(c.Request().Context(), sessionKey, limit)
	if err != nil {
		if errors.Is(err, history.ErrSessionNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"session_key": sessionKey,
				"history":     []string{},
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_key": sessionKey,
		"history":     answers,
	})
}

// HistoryIndex lists every known session with its originating task.
func (h *AgentHandler) HistoryIndex(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "history store not available")
	}
	sessions, err := h.store.Sessions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if sessions == nil {
		sessions = []history.SessionInfo{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// DeleteSession removes one session. An unknown key reports success=false
// rather than an error status.
func (h *AgentHandler) DeleteSession(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "history store not available")
	}
	sessionKey := strings.TrimSpace(c.QueryParam("session_key"))
	if sessionKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_key is required")
	}
	if err := h.store.Delete(c.Request().Context(), sessionKey); err != nil {
		if errors.Is(err, history.ErrSessionNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
