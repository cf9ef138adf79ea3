package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"wayfare/internal/ratelimit"
	"wayfare/internal/util"
	"wayfare/pkg/domain"
	"wayfare/pkg/store"
	"wayfare/services/api/internal/app"
)

const maxBodyBytes = 1 << 20
const maxMediaBytes = 16 << 20

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App

	// Redis backing for OTP challenges; empty disables email login.
	OTPRedisAddr     string
	OTPRedisPassword string
	OTP              OTPOptions

	// Per-client-IP limiter for OTP issuance and per-user limiter for
	// reaction writes. Nil disables the respective limit.
	OTPLimiter      *ratelimit.FixedWindowLimiter
	ReactionLimiter *ratelimit.FixedWindowLimiter

	TrustedProxies *util.TrustedProxies

	// DevMode returns the OTP code in the request-otp response instead of
	// delivering it out of band.
	DevMode bool
}

// Server exposes the HTTP API.
type Server struct {
	app             *app.App
	mux             *http.ServeMux
	otp             *otpStore
	otpLimiter      *ratelimit.FixedWindowLimiter
	reactionLimiter *ratelimit.FixedWindowLimiter
	trustedProxies  *util.TrustedProxies
	devMode         bool
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	s := &Server{
		app:             cfg.App,
		mux:             http.NewServeMux(),
		otpLimiter:      cfg.OTPLimiter,
		reactionLimiter: cfg.ReactionLimiter,
		trustedProxies:  cfg.TrustedProxies,
		devMode:         cfg.DevMode,
	}
	if strings.TrimSpace(cfg.OTPRedisAddr) != "" {
		otp, err := newOTPStore(cfg.OTPRedisAddr, cfg.OTPRedisPassword, cfg.OTP)
		if err != nil {
			return nil, err
		}
		s.otp = otp
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped in the shared middleware
// chain.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("api", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/request-otp", s.handleRequestOTP)
	s.mux.HandleFunc("/api/auth/verify-otp", s.handleVerifyOTP)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)

	// catalog & feed
	s.mux.HandleFunc("/api/cities", s.handleCities)
	s.mux.HandleFunc("/api/topics", s.handleTopics)
	s.mux.HandleFunc("/api/feed", s.handleFeed)

	// questions & answers
	s.mux.HandleFunc("/api/questions", s.handleQuestions)
	s.mux.HandleFunc("/api/questions/", s.handleQuestionByID)
	s.mux.Handle("/api/answers", s.authenticated(s.handleCreateAnswer))
	s.mux.Handle("/api/answers/media", s.authenticated(s.handleAnswerMedia))

	// reactions
	s.mux.Handle("/api/reactions", s.authenticated(s.handleReaction))

	// cards
	s.mux.HandleFunc("/api/cards", s.handleCards)
	s.mux.HandleFunc("/api/cards/", s.handleCardByID)

	// reports & profile
	s.mux.Handle("/api/reports", s.authenticated(s.handleCreateReport))
	s.mux.Handle("/api/profile/me", s.authenticated(s.handleProfile))

	// admin
	s.mux.Handle("/api/admin/reports", s.adminOnly(s.handleAdminReports))
	s.mux.Handle("/api/admin/reports/", s.adminOnly(s.handleAdminReportByID))
	s.mux.Handle("/api/admin/questions", s.adminOnly(s.handleAdminQuestions))
	s.mux.Handle("/api/admin/cards/drafts", s.adminOnly(s.handleAdminDraftCards))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) adminOnly(next authHandler) http.Handler {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, user domain.User) {
		if !user.IsAdmin {
			slog.Warn("security_event",
				"event", "admin_denied",
				"user_id", user.ID,
				"path", r.URL.Path,
				"request_id", util.RequestIDFromRequest(r),
			)
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) authorize(r *http.Request) (domain.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.User{}, false
	}
	return s.app.UserFromToken(token)
}

// optionalUser resolves the caller when a valid token is present, and
// returns the zero user otherwise. Used on public endpoints whose output
// widens for admins.
func (s *Server) optionalUser(r *http.Request) domain.User {
	if r.Header.Get("Authorization") == "" {
		return domain.User{}
	}
	user, _ := s.authorize(r)
	return user
}

// auth handlers
func (s *Server) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.otp == nil {
		writeError(w, http.StatusServiceUnavailable, "email login is not configured")
		return
	}
	clientIP := util.ClientIP(r, s.trustedProxies)
	if s.otpLimiter != nil && !s.otpLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	var req otpRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	challengeID, code, expiresIn, resendIn, err := s.otp.CreateChallenge(req.Email)
	if err != nil {
		if errors.Is(err, errOTPSendRateLimited) {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("security_event",
		"event", "otp_issued",
		"email", maskEmail(req.Email),
		"client_ip", clientIP,
		"request_id", util.RequestIDFromRequest(r),
	)
	resp := otpResponse{
		ChallengeID:      challengeID,
		ExpiresInSeconds: expiresIn,
		ResendInSeconds:  resendIn,
	}
	if s.devMode {
		resp.DebugCode = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.otp == nil {
		writeError(w, http.StatusServiceUnavailable, "email login is not configured")
		return
	}
	var req otpVerifyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.otp.VerifyChallenge(req.ChallengeID, req.Email, req.Code); err != nil {
		slog.Warn("security_event",
			"event", "otp_rejected",
			"email", maskEmail(req.Email),
			"client_ip", util.ClientIP(r, s.trustedProxies),
			"request_id", util.RequestIDFromRequest(r),
		)
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	user, token, err := s.app.LoginByEmail(req.Email)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.app.Logout(token); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// catalog handlers
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	cities, err := s.app.ListCities()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cities, "count": len(cities)})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	topics, err := s.app.ListTopics()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": topics, "count": len(topics)})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	items, err := s.app.Feed(limit, offset)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// question handlers
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := store.QuestionFilter{
			CityID:  r.URL.Query().Get("city"),
			TopicID: r.URL.Query().Get("topic"),
		}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, ok := domain.ParseQuestionStatus(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid status")
				return
			}
			filter.Status = status
		}
		questions, err := s.app.ListQuestions(filter)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": questions, "count": len(questions)})
	case http.MethodPost:
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req questionCreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		question, err := s.app.CreateQuestion(
			user.ID, req.CityID, req.TopicID, req.Duration,
			domain.BudgetTier(req.BudgetTier), req.Requirements, req.Body,
		)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, question)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleQuestionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/questions/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/generate-summary"); ok {
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		s.handleGenerateSummary(w, r, id)
		return
	}
	if strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	thread, err := s.app.GetQuestionThread(rest)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request, questionID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	user, ok := s.authorize(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	card, err := s.app.GenerateCard(user.ID, questionID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// answer handlers
func (s *Server) handleCreateAnswer(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req answerCreateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	answer, err := s.app.CreateAnswer(user.ID, req.QuestionID, req.Body, req.Context, req.MediaURL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, answer)
}

func (s *Server) handleAnswerMedia(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.app.UploadAnswerMedia(r.Context(), user.ID, header.Filename, contentType, file, header.Size)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// reaction handler
func (s *Server) handleReaction(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.reactionLimiter != nil && !s.reactionLimiter.Allow(user.ID) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	var req reactionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	reaction, err := s.app.SubmitReaction(
		user.ID,
		domain.ReactionType(req.Type),
		domain.EntityType(req.EntityType),
		req.EntityID,
	)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reaction)
}

// card handlers
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	query := r.URL.Query()
	filter := store.CardFilter{
		CityID:     query.Get("city"),
		TopicID:    query.Get("topic"),
		BudgetTier: domain.BudgetTier(query.Get("budgetTier")),
	}
	if raw := strings.TrimSpace(query.Get("requirements")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Requirements = append(filter.Requirements, part)
			}
		}
	}
	includeDrafts := query.Get("includeDrafts") == "true"
	cards, err := s.app.ListCards(filter, includeDrafts, s.optionalUser(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cards, "count": len(cards)})
}

func (s *Server) handleCardByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/cards/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		card, err := s.app.GetCard(s.optionalUser(r), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	case http.MethodPut:
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req cardUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		update := app.CardUpdate{
			Title:           req.Title,
			Summary:         req.Summary,
			Recommendations: req.Recommendations,
			Risks:           req.Risks,
			FitFor:          req.FitFor,
		}
		if req.Status != nil {
			status, valid := domain.ParseCardStatus(*req.Status)
			if !valid {
				writeError(w, http.StatusBadRequest, "invalid status")
				return
			}
			update.Status = &status
		}
		card, err := s.app.EditCard(user, id, update)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	default:
		methodNotAllowed(w)
	}
}

// report & profile handlers
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req reportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	report, err := s.app.CreateReport(user.ID, domain.EntityType(req.EntityType), req.EntityID, req.Reason)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		view, err := s.app.GetProfile(user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case http.MethodPut:
		var req profileUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		update := app.ProfileUpdate{
			Language:           req.Language,
			TravelStyle:        req.TravelStyle,
			CitiesOfExperience: req.CitiesOfExperience,
		}
		if req.BudgetTier != nil {
			tier := domain.BudgetTier(*req.BudgetTier)
			update.BudgetTier = &tier
		}
		profile, err := s.app.UpdateProfile(user.ID, update)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		methodNotAllowed(w)
	}
}

// admin handlers
func (s *Server) handleAdminReports(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	reports, err := s.app.ListReports(user)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": reports, "count": len(reports)})
}

func (s *Server) handleAdminReportByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/reports/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req reportStatusRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	report, err := s.app.UpdateReportStatus(user, id, domain.ReportStatus(req.Status))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAdminQuestions(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	filter := store.QuestionFilter{
		CityID:   r.URL.Query().Get("city"),
		TopicID:  r.URL.Query().Get("topic"),
		AuthorID: r.URL.Query().Get("author"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseQuestionStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = status
	}
	questions, err := s.app.ListQuestions(filter)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": questions, "count": len(questions)})
}

func (s *Server) handleAdminDraftCards(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	cards, err := s.app.ListDraftCards(user)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cards, "count": len(cards)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// request/response payloads
type otpRequest struct {
	Email string `json:"email"`
}

type otpResponse struct {
	ChallengeID      string `json:"challengeId"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
	ResendInSeconds  int    `json:"resendInSeconds"`
	DebugCode        string `json:"debugCode,omitempty"`
}

type otpVerifyRequest struct {
	ChallengeID string `json:"challengeId"`
	Email       string `json:"email"`
	Code        string `json:"code"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type questionCreateRequest struct {
	CityID       string   `json:"cityId"`
	TopicID      string   `json:"topicId"`
	Duration     string   `json:"duration"`
	BudgetTier   string   `json:"budgetTier"`
	Requirements []string `json:"requirements"`
	Body         string   `json:"body"`
}

type answerCreateRequest struct {
	QuestionID string            `json:"questionId"`
	Body       string            `json:"body"`
	Context    map[string]string `json:"context"`
	MediaURL   string            `json:"mediaUrl"`
}

type reactionRequest struct {
	Type       string `json:"type"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}

type cardUpdateRequest struct {
	Title           *string   `json:"title"`
	Summary         *string   `json:"summary"`
	Recommendations *[]string `json:"recommendations"`
	Risks           *[]string `json:"risks"`
	FitFor          *[]string `json:"fitFor"`
	Status          *string   `json:"status"`
}

type reportRequest struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Reason     string `json:"reason"`
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

type profileUpdateRequest struct {
	Language           *string   `json:"language"`
	TravelStyle        *string   `json:"travelStyle"`
	BudgetTier         *string   `json:"budgetTier"`
	CitiesOfExperience *[]string `json:"citiesOfExperience"`
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// writeAppError maps core errors onto HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden),
		errors.Is(err, app.ErrHelpedAuthorOnly):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrCardUnpublish):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrDailyQuestionLimit):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, app.ErrMediaNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, app.ErrHelpedTargetsAnswers),
		errors.Is(err, app.ErrSavedScope),
		errors.Is(err, app.ErrInvalidReactionType),
		errors.Is(err, app.ErrInvalidEntityType),
		errors.Is(err, app.ErrEmailRequired),
		errors.Is(err, app.ErrBodyRequired),
		errors.Is(err, app.ErrReasonRequired),
		errors.Is(err, app.ErrInvalidBudgetTier),
		errors.Is(err, app.ErrInvalidReportStatus),
		errors.Is(err, app.ErrMediaContentRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
