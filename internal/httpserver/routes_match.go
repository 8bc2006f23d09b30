// internal/httpserver/routes_match.go
//
// HTTP routes for the round lifecycle and rankings.
// Exposes under optional auth (guests play with an anon cookie):
//   - POST /match/new         → draw a letter, start opponent generation
//   - POST /match/answers     → submit the player's answers, get the verdict
//   - POST /match/abandon     → drop an in-flight round (no profile update)
//   - GET  /leaderboard       → top finished rounds by player points
//   - GET  /profile/opponent  → the caller's persisted opponent profile
//
// Sessions are held in memory for active play; completed rounds and the
// opponent profile aggregate are persisted to the DB per owner.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/CamiloDuvane/cwdnometerra/internal/game"
	"github.com/CamiloDuvane/cwdnometerra/internal/opponent"
	"github.com/CamiloDuvane/cwdnometerra/internal/vocab"
)

// Round time limit bounds (seconds). The timer itself runs client-side;
// the server only echoes the chosen limit back.
const (
	defaultTimeLimit = 60
	minTimeLimit     = 10
	maxTimeLimit     = 300
)

// mountMatch registers all match + ranking routes on an optional-auth
// router.
func (s *Server) mountMatch(r chi.Router) {
	r.Route("/match", func(r chi.Router) {
		r.Post("/new", s.handleNewMatch)
		r.Post("/answers", s.handleAnswers)
		r.Post("/abandon", s.handleAbandon)
	})
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/profile/opponent", s.handleOpponentProfile)
}

// ownerID returns the authenticated user ID if logged in, otherwise the
// stable anonymous cookie ID. Both user and anon rounds persist history
// and a profile under this key.
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) (id string, user *authUser) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, me
	}
	return s.ensureAnonID(w, r), nil
}

// profileView is the JSON shape of the opponent profile in responses.
type profileView struct {
	Level             int     `json:"level"`
	Experience        int     `json:"experience"`
	ExperienceInLevel int     `json:"experienceInLevel"`
	SuccessRate       float64 `json:"successRate"`
}

func viewOf(p opponent.Profile) profileView {
	return profileView{
		Level:             p.Level,
		Experience:        p.Experience,
		ExperienceInLevel: p.ExperienceInLevel(),
		SuccessRate:       p.SuccessRate(),
	}
}

// newMatchReq/Res payloads for POST /match/new.
type newMatchReq struct {
	PlayerName       string `json:"playerName"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
	Mode             string `json:"mode"`   // "normal" | "daily"
	Letter           string `json:"letter"` // optional fixed letter (testing)
}
type newMatchRes struct {
	MatchID          string      `json:"matchId"`
	Letter           string      `json:"letter"`
	Categories       []string    `json:"categories"`
	TimeLimitSeconds int         `json:"timeLimitSeconds"`
	Opponent         profileView `json:"opponent"`
}

// handleNewMatch draws a letter, loads the caller's opponent profile,
// starts asynchronous answer generation, and records the round row.
func (s *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var req newMatchReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var letter game.Letter
	switch {
	case req.Letter != "":
		l, err := game.ParseLetter(req.Letter)
		if err != nil {
			http.Error(w, `{"error":"bad_letter"}`, http.StatusBadRequest)
			return
		}
		letter = l
	case req.Mode == "daily":
		letter = game.DailyLetter(time.Now(), getEnv("DAILY_SALT", "local_dev_salt"))
	default:
		letter = game.DrawLetter()
	}

	limit := req.TimeLimitSeconds
	if limit <= 0 {
		limit = defaultTimeLimit
	}
	if limit < minTimeLimit {
		limit = minTimeLimit
	}
	if limit > maxTimeLimit {
		limit = maxTimeLimit
	}

	owner, _ := s.ownerID(w, r)
	profile, err := s.hist.LoadProfile(r.Context(), owner)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("load opponent profile, starting fresh")
	}
	model := opponent.NewModel(profile, vocab.Candidates, time.Now().UnixNano())

	sess := s.ctrl.Begin(req.PlayerName, letter, time.Duration(limit)*time.Second, model)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Round history row; best effort, the round plays on without it.
	userID := ""
	anonID := owner
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		userID, anonID = me.ID, ""
	}
	if err := s.hist.InsertMatch(r.Context(), sess.ID, userID, anonID, string(letter)); err != nil {
		log.Warn().Err(err).Str("matchId", sess.ID).Msg("insert match row")
	}

	_ = json.NewEncoder(w).Encode(newMatchRes{
		MatchID:          sess.ID,
		Letter:           string(letter),
		Categories:       categoriesAsStrings(),
		TimeLimitSeconds: limit,
		Opponent:         viewOf(profile),
	})
}

// answersReq/Res payloads for POST /match/answers.
type answersReq struct {
	MatchID string            `json:"matchId"`
	Answers map[string]string `json:"answers"` // category → raw answer
}
type answersRes struct {
	Verdict  *game.Verdict `json:"verdict"`
	Opponent profileView   `json:"opponent"`
}

// handleAnswers finishes the round: bounded wait for opponent answers,
// validation, profile update, persistence. On a validation error the
// session is kept so the client can return to setup without losing the
// round.
func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	var req answersReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.MatchID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	human := game.NewAnswerSet(req.Answers)
	verdict, profile, err := s.ctrl.Finish(r.Context(), sess, human)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	_ = s.store.Delete(r.Context(), sess.ID)

	// Persist outcome (best effort, non-fatal if it fails)
	owner, me := s.ownerID(w, r)
	if err := s.hist.FinishMatch(r.Context(), sess.ID, verdict.PlayerTotal, verdict.OpponentTotal); err != nil {
		log.Warn().Err(err).Str("matchId", sess.ID).Msg("finish match row")
	}
	if err := s.hist.SaveProfile(r.Context(), owner, profile); err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("save opponent profile")
	}
	if me != nil {
		tx, txErr := s.db.Begin()
		if txErr == nil {
			defer func() { _ = tx.Rollback() }()
			if err := s.bumpStats(tx, me.ID, verdict.PlayerTotal > verdict.OpponentTotal); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
			_ = tx.Commit()
		}
	}

	_ = json.NewEncoder(w).Encode(answersRes{Verdict: verdict, Opponent: viewOf(profile)})
}

// abandonReq payload for POST /match/abandon.
type abandonReq struct {
	MatchID string `json:"matchId"`
}

// handleAbandon drops an in-flight round. Generation is cancelled and the
// opponent profile is untouched: abandoned rounds never feed the counters.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	var req abandonReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.MatchID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	s.ctrl.Abandon(sess)
	_ = s.store.Delete(r.Context(), sess.ID)
	if err := s.hist.AbandonMatch(r.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("matchId", sess.ID).Msg("abandon match row")
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLeaderboard returns the top finished rounds for registered users.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rows, err := s.hist.Leaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleOpponentProfile returns the caller's persisted opponent profile
// (the starting profile when none has been saved).
func (s *Server) handleOpponentProfile(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.ownerID(w, r)
	p, err := s.hist.LoadProfile(r.Context(), owner)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("load opponent profile")
	}
	_ = json.NewEncoder(w).Encode(viewOf(p))
}
