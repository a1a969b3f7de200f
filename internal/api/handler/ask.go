package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-assistant/internal/api/respond"
	"github.com/albapepper/scoracle-assistant/internal/assistant"
	"github.com/albapepper/scoracle-assistant/internal/cache"
	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

// MaxQuestionLength bounds a question in characters.
const MaxQuestionLength = 500

// AskRequest is the POST /ask body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskGet answers the question in the q query parameter.
// @Summary Ask a question
// @Description Answers a natural-language question about league statistics. Template answers are cached and carry an ETag.
// @Tags assistant
// @Produce json
// @Param q query string true "Question, e.g. Show stats for Galatasaray in 24/25"
// @Success 200 {object} assistant.Answer
// @Success 304
// @Failure 400 {object} respond.ErrorResponse
// @Router /ask [get]
func (h *Handler) AskGet(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, r.URL.Query().Get("q"))
}

// AskPost answers the question in the JSON body.
// @Summary Ask a question
// @Description Same as GET /ask with the question in a JSON body.
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body AskRequest true "Question"
// @Success 200 {object} assistant.Answer
// @Failure 400 {object} respond.ErrorResponse
// @Router /ask [post]
func (h *Handler) AskPost(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, 16<<10))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON", err.Error())
		return
	}
	h.ask(w, r, req.Question)
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request, question string) {
	question = strings.TrimSpace(question)
	if question == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUESTION", "a question is required")
		return
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		respond.WriteError(w, http.StatusBadRequest, "QUESTION_TOO_LONG",
			"questions are limited to "+strconv.Itoa(MaxQuestionLength)+" characters")
		return
	}

	key := cache.Key(string(h.assistant.Mode()), question)
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteCached(w, data, etag, h.cfg.CacheTTL, true)
		return
	}

	ans := h.assistant.Answer(r.Context(), question)
	if !cacheable(ans) {
		respond.WriteJSON(w, http.StatusOK, ans)
		return
	}

	// Cached bytes are shared between requests, so they carry no history id.
	ans.HistoryID = ""
	data, err := json.Marshal(ans)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "could not encode answer")
		return
	}
	etag := h.cache.Set(key, data)
	respond.WriteCached(w, data, etag, h.cfg.CacheTTL, false)
}

func cacheable(ans assistant.Answer) bool {
	return ans.Path == assistant.PathTemplate || ans.Path == assistant.PathHelp
}

// Columns lists the statistics columns the assistant knows about.
// @Summary List statistic columns
// @Description Returns the team_statistics column list captured at startup.
// @Tags assistant
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /columns [get]
func (h *Handler) Columns(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"table":   "team_statistics",
		"columns": h.assistant.Columns(),
	})
}

// ListHistory returns the most recent answered questions.
// @Summary Recent questions
// @Description Returns answered questions, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum entries" default(20)
// @Success 200 {array} history.Entry
// @Failure 400 {object} respond.ErrorResponse
// @Router /history [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", 20)
	if !ok {
		return
	}
	entries := h.assistant.History().Latest(limit)
	if entries == nil {
		entries = []history.Entry{}
	}
	respond.WriteJSON(w, http.StatusOK, entries)
}

// GetHistory returns one history entry.
// @Summary History entry
// @Tags history
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} history.Entry
// @Failure 404 {object} respond.ErrorResponse
// @Router /history/{id} [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := h.assistant.History().Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no history entry "+id)
		return
	}
	respond.WriteJSON(w, http.StatusOK, entry)
}

// GetTrend returns a team's season-by-season goal trend.
// @Summary Goal trend
// @Description Recent seasons for the team matching the fragment, with goal difference changes and per-match rates.
// @Tags assistant
// @Produce json
// @Param team query string true "Team name or fragment"
// @Param limit query int false "Seasons" default(5)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /trend [get]
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	team := strings.TrimSpace(r.URL.Query().Get("team"))
	if team == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "team query parameter is required")
		return
	}
	limit, ok := intParam(w, r, "limit", query.DefaultTrendSeasons)
	if !ok {
		return
	}
	trend := h.assistant.Trend(r.Context(), team, limit)
	if len(trend.Points) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no seasons found for "+team)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"team":    trend.Points[0].Team,
		"seasons": trend.Points,
		"changes": trend.Changes(),
	})
}

func intParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_"+strings.ToUpper(name), name+" must be a positive integer")
		return 0, false
	}
	return n, true
}
