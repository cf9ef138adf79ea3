package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"wayfare/pkg/domain"
	"wayfare/pkg/store"
	"wayfare/services/api/internal/app"
)

type testEnv struct {
	t     *testing.T
	srv   *httptest.Server
	mem   *store.MemoryStore
	redis *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemoryStore()
	core, err := app.New(app.Config{
		Store:     mem,
		JWTSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	redis := miniredis.RunT(t)
	s, err := New(Config{
		App:          core,
		OTPRedisAddr: redis.Addr(),
		DevMode:      true,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return &testEnv{t: t, srv: srv, mem: mem, redis: redis}
}

func (e *testEnv) seedCatalog() {
	e.t.Helper()
	if err := e.mem.SaveCity(domain.City{ID: "city-1", Name: "Tbilisi", Country: "Georgia"}); err != nil {
		e.t.Fatalf("seed city: %v", err)
	}
	if err := e.mem.SaveTopic(domain.Topic{ID: "topic-1", Name: "Housing"}); err != nil {
		e.t.Fatalf("seed topic: %v", err)
	}
}

func (e *testEnv) do(method, path, token string, body any) (*http.Response, map[string]any) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	payload := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

// login runs the full OTP flow for the email and returns a session token.
func (e *testEnv) login(email string) string {
	e.t.Helper()
	// Skip past any resend lock left by an earlier login in this test.
	e.redis.FastForward(2 * time.Minute)
	resp, body := e.do(http.MethodPost, "/api/auth/request-otp", "", map[string]string{"email": email})
	if resp.StatusCode != http.StatusOK {
		e.t.Fatalf("request-otp: %d %v", resp.StatusCode, body)
	}
	challengeID, _ := body["challengeId"].(string)
	code, _ := body["debugCode"].(string)
	if challengeID == "" || code == "" {
		e.t.Fatalf("missing challenge or dev code: %v", body)
	}
	resp, body = e.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{
		"challengeId": challengeID,
		"email":       email,
		"code":        code,
	})
	if resp.StatusCode != http.StatusOK {
		e.t.Fatalf("verify-otp: %d %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		e.t.Fatalf("missing token: %v", body)
	}
	return token
}

// loginAdmin promotes the account before logging in.
func (e *testEnv) loginAdmin(email string) string {
	e.t.Helper()
	token := e.login(email)
	user, ok, err := e.mem.GetUserByEmail(email)
	if err != nil || !ok {
		e.t.Fatalf("admin user missing: %v", err)
	}
	user.IsAdmin = true
	if err := e.mem.SaveUser(user); err != nil {
		e.t.Fatalf("promote admin: %v", err)
	}
	return token
}

func (e *testEnv) createQuestion(token string) string {
	e.t.Helper()
	resp, body := e.do(http.MethodPost, "/api/questions", token, map[string]any{
		"cityId":       "city-1",
		"topicId":      "topic-1",
		"duration":     "2 months",
		"budgetTier":   "mid",
		"requirements": []string{"quiet"},
		"body":         "Where should I stay in Tbilisi for two months?",
	})
	if resp.StatusCode != http.StatusCreated {
		e.t.Fatalf("create question: %d %v", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	return id
}

func (e *testEnv) createAnswer(token, questionID, text string) string {
	e.t.Helper()
	resp, body := e.do(http.MethodPost, "/api/answers", token, map[string]any{
		"questionId": questionID,
		"body":       text,
	})
	if resp.StatusCode != http.StatusCreated {
		e.t.Fatalf("create answer: %d %v", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	return id
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", resp.StatusCode, body)
	}
}

func TestOTPLoginFlow(t *testing.T) {
	e := newTestEnv(t)

	resp, body := e.do(http.MethodPost, "/api/auth/request-otp", "", map[string]string{"email": "Traveler@Example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request-otp: %d %v", resp.StatusCode, body)
	}
	challengeID, _ := body["challengeId"].(string)
	code, _ := body["debugCode"].(string)

	// Wrong code is rejected.
	resp, _ = e.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{
		"challengeId": challengeID, "email": "traveler@example.com", "code": "000000",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong code expected 401, got %d", resp.StatusCode)
	}

	resp, body = e.do(http.MethodPost, "/api/auth/verify-otp", "", map[string]string{
		"challengeId": challengeID, "email": "traveler@example.com", "code": code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp: %d %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]any)
	if token == "" || user["email"] != "traveler@example.com" {
		t.Fatalf("unexpected login payload: %v", body)
	}

	resp, _ = e.do(http.MethodGet, "/api/profile/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile with token: %d", resp.StatusCode)
	}

	resp, _ = e.do(http.MethodPost, "/api/auth/logout", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: %d", resp.StatusCode)
	}
	resp, _ = e.do(http.MethodGet, "/api/profile/me", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("profile after logout expected 401, got %d", resp.StatusCode)
	}
}

func TestRequestOTPResendLock(t *testing.T) {
	e := newTestEnv(t)
	resp, _ := e.do(http.MethodPost, "/api/auth/request-otp", "", map[string]string{"email": "traveler@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request: %d", resp.StatusCode)
	}
	resp, _ = e.do(http.MethodPost, "/api/auth/request-otp", "", map[string]string{"email": "traveler@example.com"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside resend window, got %d", resp.StatusCode)
	}
	e.redis.FastForward(2 * time.Minute)
	resp, _ = e.do(http.MethodPost, "/api/auth/request-otp", "", map[string]string{"email": "traveler@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request after lock expiry: %d", resp.StatusCode)
	}
}

func TestQuestionRequiresAuth(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	resp, _ := e.do(http.MethodPost, "/api/questions", "", map[string]any{"body": "x"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestDailyQuestionLimitOverHTTP(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	token := e.login("asker@example.com")
	for i := 0; i < 3; i++ {
		e.createQuestion(token)
	}
	resp, _ := e.do(http.MethodPost, "/api/questions", token, map[string]any{
		"cityId": "city-1", "topicId": "topic-1", "duration": "1 month",
		"budgetTier": "mid", "body": "one more",
	})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the daily cap, got %d", resp.StatusCode)
	}
}

func TestReactionEndpoint(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	askerToken := e.login("asker@example.com")
	helperToken := e.login("helper@example.com")

	questionID := e.createQuestion(askerToken)
	answerID := e.createAnswer(helperToken, questionID, "Try Vera or Vake.")

	// Only the question author may mark helped.
	resp, _ := e.do(http.MethodPost, "/api/reactions", helperToken, map[string]string{
		"type": "helped", "entityType": "answer", "entityId": answerID,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-author helped expected 403, got %d", resp.StatusCode)
	}
	resp, _ = e.do(http.MethodPost, "/api/reactions", askerToken, map[string]string{
		"type": "helped", "entityType": "answer", "entityId": answerID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("author helped: %d", resp.StatusCode)
	}

	// Saves are scoped to answers and cards.
	resp, _ = e.do(http.MethodPost, "/api/reactions", helperToken, map[string]string{
		"type": "saved", "entityType": "question", "entityId": questionID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("save on question expected 400, got %d", resp.StatusCode)
	}

	// Thanks works for anyone on any target.
	resp, _ = e.do(http.MethodPost, "/api/reactions", helperToken, map[string]string{
		"type": "thanks", "entityType": "question", "entityId": questionID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("thanks: %d", resp.StatusCode)
	}

	// Missing targets are a 404.
	resp, _ = e.do(http.MethodPost, "/api/reactions", helperToken, map[string]string{
		"type": "thanks", "entityType": "answer", "entityId": "missing",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing target expected 404, got %d", resp.StatusCode)
	}
}

func TestGenerateSummaryEndpoint(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	askerToken := e.login("asker@example.com")
	helperToken := e.login("helper@example.com")

	questionID := e.createQuestion(askerToken)
	e.createAnswer(helperToken, questionID, "Stay near Rustaveli for transit.")

	path := fmt.Sprintf("/api/questions/%s/generate-summary", questionID)

	resp, _ := e.do(http.MethodPost, path, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", resp.StatusCode)
	}
	resp, _ = e.do(http.MethodPost, path, helperToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-author expected 403, got %d", resp.StatusCode)
	}

	resp, body := e.do(http.MethodPost, path, askerToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: %d %v", resp.StatusCode, body)
	}
	if body["status"] != "DRAFT" || body["title"] != "Tbilisi — Housing for 2 months" {
		t.Fatalf("unexpected card: %v", body)
	}
	firstID, _ := body["id"].(string)

	// Regenerating is allowed and yields another draft.
	resp, body = e.do(http.MethodPost, path, askerToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("second generate: %d %v", resp.StatusCode, body)
	}
	if secondID, _ := body["id"].(string); secondID == "" || secondID == firstID {
		t.Fatalf("expected a distinct second card, got %v", body)
	}
}

func TestCardVisibilityAndPublish(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	askerToken := e.login("asker@example.com")
	adminToken := e.loginAdmin("admin@example.com")

	questionID := e.createQuestion(askerToken)
	resp, body := e.do(http.MethodPost, fmt.Sprintf("/api/questions/%s/generate-summary", questionID), askerToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: %d %v", resp.StatusCode, body)
	}
	cardID, _ := body["id"].(string)

	// Drafts are hidden from everyone but admins.
	resp, _ = e.do(http.MethodGet, "/api/cards/"+cardID, "", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("draft for anonymous expected 403, got %d", resp.StatusCode)
	}
	resp, _ = e.do(http.MethodGet, "/api/cards/"+cardID, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("draft for admin: %d", resp.StatusCode)
	}
	resp, body = e.do(http.MethodGet, "/api/cards", "", nil)
	if resp.StatusCode != http.StatusOK || body["count"].(float64) != 0 {
		t.Fatalf("public list must hide drafts: %d %v", resp.StatusCode, body)
	}

	// Publishing is admin-only.
	publish := map[string]string{"status": "PUBLISHED"}
	resp, _ = e.do(http.MethodPut, "/api/cards/"+cardID, askerToken, publish)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("member publish expected 403, got %d", resp.StatusCode)
	}
	resp, body = e.do(http.MethodPut, "/api/cards/"+cardID, adminToken, publish)
	if resp.StatusCode != http.StatusOK || body["status"] != "PUBLISHED" {
		t.Fatalf("admin publish: %d %v", resp.StatusCode, body)
	}

	// Published cards never return to draft.
	resp, _ = e.do(http.MethodPut, "/api/cards/"+cardID, adminToken, map[string]string{"status": "DRAFT"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("unpublish expected 409, got %d", resp.StatusCode)
	}

	resp, _ = e.do(http.MethodGet, "/api/cards/"+cardID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("published card for anonymous: %d", resp.StatusCode)
	}
}

func TestAdminGates(t *testing.T) {
	e := newTestEnv(t)
	memberToken := e.login("member@example.com")
	adminToken := e.loginAdmin("admin@example.com")

	for _, path := range []string{"/api/admin/reports", "/api/admin/questions", "/api/admin/cards/drafts"} {
		resp, _ := e.do(http.MethodGet, path, memberToken, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s member expected 403, got %d", path, resp.StatusCode)
		}
		resp, _ = e.do(http.MethodGet, path, adminToken, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s admin expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestReportFlowOverHTTP(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	askerToken := e.login("asker@example.com")
	adminToken := e.loginAdmin("admin@example.com")
	questionID := e.createQuestion(askerToken)

	resp, body := e.do(http.MethodPost, "/api/reports", askerToken, map[string]string{
		"entityType": "question", "entityId": questionID, "reason": "spam",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create report: %d %v", resp.StatusCode, body)
	}
	reportID, _ := body["id"].(string)

	resp, body = e.do(http.MethodPut, "/api/admin/reports/"+reportID, adminToken, map[string]string{"status": "REVIEWED"})
	if resp.StatusCode != http.StatusOK || body["status"] != "REVIEWED" {
		t.Fatalf("review report: %d %v", resp.StatusCode, body)
	}
	resp, _ = e.do(http.MethodPut, "/api/admin/reports/"+reportID, adminToken, map[string]string{"status": "BOGUS"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus status expected 400, got %d", resp.StatusCode)
	}
}

func TestFeedAndThreadEndpoints(t *testing.T) {
	e := newTestEnv(t)
	e.seedCatalog()
	askerToken := e.login("asker@example.com")
	helperToken := e.login("helper@example.com")

	questionID := e.createQuestion(askerToken)
	e.createAnswer(helperToken, questionID, "Look at Vera.")

	resp, body := e.do(http.MethodGet, "/api/feed", "", nil)
	if resp.StatusCode != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("feed: %d %v", resp.StatusCode, body)
	}

	resp, body = e.do(http.MethodGet, "/api/questions/"+questionID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("thread: %d %v", resp.StatusCode, body)
	}
	answers, _ := body["answers"].([]any)
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer in thread, got %v", body)
	}

	resp, _ = e.do(http.MethodGet, "/api/questions/missing", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing thread expected 404, got %d", resp.StatusCode)
	}
}
