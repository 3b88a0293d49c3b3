//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"
	"investimon-go/internal/config"
	"investimon-go/internal/db"
	challengedomain "investimon-go/internal/domain/challenge"
	characterdomain "investimon-go/internal/domain/character"
	classroomdomain "investimon-go/internal/domain/classroom"
	linkingdomain "investimon-go/internal/domain/linking"
	newsdomain "investimon-go/internal/domain/news"
	userdomain "investimon-go/internal/domain/user"
	"investimon-go/internal/repository/inmemory"
	challengerepo "investimon-go/internal/repository/postgres/challenge"
	characterrepo "investimon-go/internal/repository/postgres/character"
	classroomrepo "investimon-go/internal/repository/postgres/classroom"
	linkingrepo "investimon-go/internal/repository/postgres/linking"
	newsrepo "investimon-go/internal/repository/postgres/news"
	userrepo "investimon-go/internal/repository/postgres/user"
	"investimon-go/internal/transport/httpserver"
	"investimon-go/internal/transport/httpserver/handler"
	"investimon-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.NewFromEnv()

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			JWTSecret:      "e2e-secret",
			Issuer:         "investimon-e2e",
			AccessTokenTTL: time.Hour,
		},
		Invites: config.InviteConfig{TTL: 7 * 24 * time.Hour},
		News:    config.NewsConfig{CacheTTL: time.Minute, FeedLimit: 20},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	linking := linkingdomain.NewService(linkingrepo.NewPostgres(dbConn), users, cfg.Invites.TTL)
	classrooms := classroomdomain.NewService(classroomrepo.NewPostgres(dbConn), users)
	challenges := challengedomain.NewService(challengerepo.NewPostgres(dbConn), users)
	characters := characterdomain.NewService(characterrepo.NewPostgres(dbConn))
	news := newsdomain.NewService(newsrepo.NewPostgres(dbConn), inmemory.NewInMemoryNewsCache(), cfg.News.CacheTTL, cfg.News.FeedLimit)

	handlers := handler.New(cfg.Auth, users, linking, classrooms, challenges, characters, news, log)
	router := httpserver.NewRouter(cfg, handlers, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE users, invites, family_links, classrooms, classroom_students, challenge_completions, character_collections RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID               string `json:"id"`
		Email            string `json:"email"`
		Role             string `json:"role"`
		Balance          int64  `json:"balance"`
		Level            int    `json:"level"`
		RequiresApproval bool   `json:"requiresApproval"`
		ParentID         string `json:"parentId"`
	} `json:"user"`
}

type inviteResponse struct {
	Code      string    `json:"code"`
	CreatedBy string    `json:"createdBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
}

type linkResponse struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}

type classroomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeacherID string `json:"teacherId"`
	IsActive  bool   `json:"isActive"`
}

type bulkResultResponse struct {
	Success      bool   `json:"success"`
	Name         string `json:"name"`
	StudentID    string `json:"studentId"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
	Error        string `json:"error"`
}

func register(t *testing.T, client *http.Client, baseURL, email, role string, age *int) sessionResponse {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "secret1",
		"name":     "Test " + role,
		"role":     role,
		"age":      age,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, resp.StatusCode, string(body))
	}
	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" || session.User.ID == "" {
		t.Fatalf("expected token and user id in session")
	}
	return session
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	session := register(t, client, env.server.URL, "parent@example.com", "parent", nil)
	if session.User.Balance != 10000 || session.User.Level != 1 {
		t.Fatalf("expected starting defaults, got balance=%d level=%d", session.User.Balance, session.User.Level)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{
		"email":    "parent@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2EInviteLinkFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	parent := register(t, client, env.server.URL, "parent@example.com", "parent", nil)
	age := 10
	child := register(t, client, env.server.URL, "child@example.com", "child", &age)
	if !child.User.RequiresApproval {
		t.Fatalf("expected child to require approval")
	}

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/invites", child.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for child minting invite, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/invites", parent.Token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var invite inviteResponse
	if err := json.Unmarshal(body, &invite); err != nil {
		t.Fatalf("decode invite: %v", err)
	}
	if len(invite.Code) != 8 {
		t.Fatalf("expected 8-char code, got %q", invite.Code)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/invites/"+invite.Code+"/qr", parent.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for qr, got %d: %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/invites/redeem", child.Token, map[string]string{
		"code": invite.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var link linkResponse
	if err := json.Unmarshal(body, &link); err != nil {
		t.Fatalf("decode link: %v", err)
	}
	if link.ParentID != parent.User.ID || link.ChildID != child.User.ID {
		t.Fatalf("unexpected link %+v", link)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/invites/redeem", child.Token, map[string]string{
		"code": invite.Code,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second redemption, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/children", parent.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var children []map[string]interface{}
	if err := json.Unmarshal(body, &children); err != nil {
		t.Fatalf("decode children: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, env.server.URL+"/api/children/"+child.User.ID, parent.Token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/children", parent.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &children); err != nil {
		t.Fatalf("decode children: %v", err)
	}
	if len(children) != 0 {
		t.Fatalf("expected 0 children after unlink, got %d", len(children))
	}
}

func TestE2EClassroomBulkFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	teacher := register(t, client, env.server.URL, "teacher@example.com", "teacher", nil)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/classrooms", teacher.Token, map[string]string{
		"name":  "Grade 5 Finance",
		"grade": "5",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var room classroomResponse
	if err := json.Unmarshal(body, &room); err != nil {
		t.Fatalf("decode classroom: %v", err)
	}
	if !room.IsActive || room.TeacherID != teacher.User.ID {
		t.Fatalf("unexpected classroom %+v", room)
	}

	age := 11
	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/classrooms/"+room.ID+"/students/bulk", teacher.Token, map[string]interface{}{
		"students": []map[string]interface{}{
			{"name": "Alice Smith", "age": age},
			{"name": ""},
			{"name": "Bob Jones", "age": age},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var results []bulkResultResponse
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatalf("decode bulk results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Fatalf("expected [ok, failed, ok], got %+v", results)
	}
	if results[0].Email == "" || results[0].TempPassword == "" {
		t.Fatalf("expected credentials for provisioned student")
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/classrooms/"+room.ID+"/students", teacher.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var students []map[string]interface{}
	if err := json.Unmarshal(body, &students); err != nil {
		t.Fatalf("decode students: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, env.server.URL+"/api/classrooms/"+room.ID, teacher.Token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/classrooms", teacher.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var rooms []classroomResponse
	if err := json.Unmarshal(body, &rooms); err != nil {
		t.Fatalf("decode classrooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no active classrooms, got %d", len(rooms))
	}
}
