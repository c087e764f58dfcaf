// internal/httpserver/routes_puzzle.go
//
// HTTP routes for playing a puzzle.
//   - POST   /sessions                                → start a session on today's puzzle
//   - DELETE /sessions                                → end the current session
//   - GET    /puzzle                                  → current state
//   - GET    /puzzle/hints                            → hints in original order
//   - PUT    /puzzle/words/{word}/letters/{letter}    → set a letter
//   - DELETE /puzzle/words/{word}/letters/{letter}    → clear a letter
//   - POST   /puzzle/reset                            → clear the whole grid
//   - GET    /puzzle/progress                         → progress summary
//   - GET    /puzzle/share                            → shareable result text
//
// Letter indexes are relative to the unpadded word. A completed puzzle is
// recorded in the results table once per session.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/onlinedenker/denker/internal/daily"
	"github.com/onlinedenker/denker/internal/puzzle"
	"github.com/onlinedenker/denker/internal/store"
)

// mountPuzzle registers all /puzzle routes.
func (s *Server) mountPuzzle(r chi.Router) {
	r.Route("/puzzle", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Get("/hints", s.handleHints)
		r.Put("/words/{word}/letters/{letter}", s.handleSetLetter)
		r.Delete("/words/{word}/letters/{letter}", s.handleClearLetter)
		r.Post("/reset", s.handleReset)
		r.Get("/progress", s.handleProgress)
		r.Get("/share", s.handleShare)
	})
}

// -----------------------------------------------------------------------------
// views

// hintView is a hint plus whether its image can be shown yet.
type hintView struct {
	puzzle.Hint
	Unlocked bool `json:"unlocked"`
}

// wordView renders one padded row. guessedLetters is null for empty and padding cells.
type wordView struct {
	Index          int       `json:"index"`
	LeftPad        int       `json:"leftPad"`
	RightPad       int       `json:"rightPad"`
	LetterCount    int       `json:"letterCount"`
	GuessedLetters []*string `json:"guessedLetters"`
	Padding        []bool    `json:"padding"`
	Guess          string    `json:"guess"` // real cells only, '?' when empty
	Filled         bool      `json:"filled"`
}

type stateView struct {
	PuzzleID       string     `json:"puzzleId"`
	CurrentDay     int        `json:"currentDay"`
	Words          []wordView `json:"words"`
	Hints          []hintView `json:"hints"`
	AlignedColumn  int        `json:"alignedColumn"`
	TargetSentence string     `json:"targetSentence,omitempty"`
	Complete       bool       `json:"complete"`
}

func hintViews(hs []puzzle.Hint) []hintView {
	out := make([]hintView, len(hs))
	for i, h := range hs {
		out[i] = hintView{Hint: h, Unlocked: h.Unlocked()}
	}
	return out
}

func viewOf(sess *store.Session, st puzzle.State) stateView {
	v := stateView{
		PuzzleID:       sess.PuzzleID,
		CurrentDay:     sess.Day,
		Words:          make([]wordView, len(st.Words)),
		Hints:          hintViews(st.Hints),
		AlignedColumn:  st.AlignedColumn,
		TargetSentence: st.TargetSentence,
		Complete:       st.Complete(),
	}
	for i, w := range st.Words {
		wv := wordView{
			Index:          w.Index,
			LeftPad:        w.LeftPad,
			RightPad:       w.RightPad,
			LetterCount:    w.LetterCount,
			GuessedLetters: make([]*string, len(w.Cells)),
			Padding:        make([]bool, len(w.Cells)),
			Guess:          w.Guess(),
			Filled:         w.Filled(),
		}
		for j, c := range w.Cells {
			wv.Padding[j] = c.Padding
			if c.Filled {
				l := string(c.Letter)
				wv.GuessedLetters[j] = &l
			}
		}
		v.Words[i] = wv
	}
	return v
}

// -----------------------------------------------------------------------------
// POST /sessions

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	PuzzleID  string    `json:"puzzleId"`
	Date      string    `json:"date"`
	Day       int       `json:"day"`
}

// handleNewSession builds a fresh engine for today's puzzle and issues a session token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	p := s.catalog.Pick(daily.PuzzleIndex(now, s.cfg.DailySalt, s.catalog.Len()))

	e, err := p.NewEngine()
	if err != nil {
		// The catalog is validated at load time; this only fires if it changed underneath us.
		hlog.FromRequest(r).Error().Err(err).Str("puzzle", p.ID).Msg("build engine")
		writeError(w, http.StatusInternalServerError, "puzzle_unavailable", "")
		return
	}
	sess := store.NewSession(p.ID, daily.DateKey(now), daily.DayNumber(now), e)
	sess.StartedAt = now
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}

	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	s.setSessionCookie(w, tok, exp)

	hlog.FromRequest(r).Info().Str("session", sess.ID).Str("puzzle", p.ID).Msg("session started")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, newSessionRes{
		SessionID: sess.ID,
		Token:     tok,
		ExpiresAt: exp,
		PuzzleID:  sess.PuzzleID,
		Date:      sess.Date,
		Day:       sess.Day,
	})
}

// handleEndSession drops the caller's session and clears the cookie.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("delete session")
		writeError(w, http.StatusInternalServerError, "delete_failed", "")
		return
	}
	s.setSessionCookie(w, "", time.Unix(0, 0))
	hlog.FromRequest(r).Info().Str("session", sess.ID).Msg("session ended")
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// reads

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, viewOf(sess, sess.Engine.State()))
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, hintViews(sessionFrom(r).Engine.AvailableHints()))
}

type progressRes struct {
	puzzle.Progress
	ElapsedMs int64  `json:"elapsedMs"`
	Elapsed   string `json:"elapsed"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	elapsed := s.now().Sub(sess.StartedAt)
	writeJSON(w, progressRes{
		Progress:  puzzle.ProgressOf(sess.Engine.State()),
		ElapsedMs: elapsed.Milliseconds(),
		Elapsed:   puzzle.FormatElapsed(elapsed),
	})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, map[string]string{"text": puzzle.ShareText(sess.Day, sess.Engine.State())})
}

// -----------------------------------------------------------------------------
// mutations

// setLetterReq is the request payload for PUT /puzzle/words/{word}/letters/{letter}.
type setLetterReq struct {
	Letter string `json:"letter"`
}

// handleSetLetter writes one letter and records the result if the puzzle became complete.
func (s *Server) handleSetLetter(w http.ResponseWriter, r *http.Request) {
	wi, li, ok := s.cellParams(w, r)
	if !ok {
		return
	}
	var req setLetterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}

	sess := sessionFrom(r)
	st, err := sess.Engine.SetLetter(wi, li, req.Letter)
	if err != nil {
		s.engineError(w, r, err)
		return
	}
	if st.Complete() {
		s.recordResult(r, sess, st)
	}
	writeJSON(w, viewOf(sess, st))
}

func (s *Server) handleClearLetter(w http.ResponseWriter, r *http.Request) {
	wi, li, ok := s.cellParams(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r)
	st, err := sess.Engine.ClearLetter(wi, li)
	if err != nil {
		s.engineError(w, r, err)
		return
	}
	writeJSON(w, viewOf(sess, st))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, viewOf(sess, sess.Engine.Reset()))
}

// recordResult persists a completion (best effort, at most once per session).
func (s *Server) recordResult(r *http.Request, sess *store.Session, st puzzle.State) {
	if done, err := s.results.Completed(r.Context(), sess.ID); err == nil && done {
		return
	}
	res := daily.Result{
		SessionID: sess.ID,
		PuzzleID:  sess.PuzzleID,
		Date:      sess.Date,
		Sentence:  st.TargetSentence,
		ElapsedMs: s.now().Sub(sess.StartedAt).Milliseconds(),
	}
	if err := s.results.InsertResult(r.Context(), res); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("session", sess.ID).Msg("record result")
		return
	}
	hlog.FromRequest(r).Info().Str("session", sess.ID).Int64("elapsedMs", res.ElapsedMs).Msg("puzzle complete")
}

// cellParams parses {word} and {letter}; it writes an error and returns false on failure.
// Integers too large for int are out of range, not malformed.
func (s *Server) cellParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	wi, err1 := strconv.Atoi(chi.URLParam(r, "word"))
	li, err2 := strconv.Atoi(chi.URLParam(r, "letter"))
	if errors.Is(err1, strconv.ErrRange) || errors.Is(err2, strconv.ErrRange) {
		s.engineError(w, r, fmt.Errorf("%w: index does not fit in int", puzzle.ErrOutOfRange))
		return 0, 0, false
	}
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "bad_index", "word and letter must be integers")
		return 0, 0, false
	}
	return wi, li, true
}

// engineError maps engine error kinds to HTTP statuses.
// Out-of-range indexes mean the client is broken, so they are logged.
func (s *Server) engineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, puzzle.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_letter", err.Error())
	case errors.Is(err, puzzle.ErrOutOfRange):
		hlog.FromRequest(r).Warn().Err(err).Str("path", r.URL.Path).Msg("guess out of range")
		writeError(w, http.StatusUnprocessableEntity, "out_of_range", err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("engine")
		writeError(w, http.StatusInternalServerError, "server_error", "")
	}
}
