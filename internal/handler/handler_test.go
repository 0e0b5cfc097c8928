package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"labstock/internal/auth"
	"labstock/internal/handler"
	"labstock/internal/model"
	"labstock/internal/repository"
	"labstock/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("Unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("Unable to ping database: %v", err)
	}

	// Truncate tables to ensure clean state
	tables := []string{"checkouts", "components", "users"} // Order matters due to FK
	for _, table := range tables {
		_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}

	return pool
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []recordedMessage
}

type recordedMessage struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Notify(to, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, recordedMessage{To: to, Subject: subject, Body: body})
}

func (n *recordingNotifier) Messages() []recordedMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedMessage(nil), n.messages...)
}

type testEnv struct {
	pool     *pgxpool.Pool
	handler  *handler.Handler
	tokens   *auth.TokenManager
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	pool := setupTestDB(t)
	t.Cleanup(pool.Close)

	tokens := auth.NewTokenManager(testSecret)
	notifier := &recordingNotifier{}

	userRepo := repository.NewUserRepository(pool)
	componentRepo := repository.NewComponentRepository(pool)
	checkoutRepo := repository.NewCheckoutRepository(pool)

	h := handler.NewHandler(
		tokens,
		handler.NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		handler.NewComponentHandler(service.NewComponentService(componentRepo)),
		handler.NewCheckoutHandler(service.NewCheckoutService(checkoutRepo, componentRepo, notifier)),
	)

	return &testEnv{pool: pool, handler: h, tokens: tokens, notifier: notifier}
}

func (e *testEnv) tokenFor(t *testing.T, id int, username, role string) string {
	t.Helper()
	token, err := e.tokens.Issue(&model.User{ID: id, Username: username, Email: username + "@lab.test", Role: role})
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// do performs a request against the full router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedUser(t *testing.T, id int, username, role string) {
	t.Helper()
	_, err := e.pool.Exec(context.Background(),
		"INSERT INTO users (id, username, email, password, role) VALUES ($1, $2, $3, 'x', $4)",
		id, username, username+"@lab.test", role,
	)
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
}

func (e *testEnv) seedComponent(t *testing.T, id int, name, category string, quantity int) {
	t.Helper()
	_, err := e.pool.Exec(context.Background(),
		"INSERT INTO components (id, name, category, quantity) VALUES ($1, $2, $3, $4)",
		id, name, category, quantity,
	)
	if err != nil {
		t.Fatalf("Failed to seed component: %v", err)
	}
}

func (e *testEnv) seedCheckout(t *testing.T, userID, componentID, quantity int) int {
	t.Helper()
	var id int
	err := e.pool.QueryRow(context.Background(),
		"INSERT INTO checkouts (user_id, component_id, quantity, status) VALUES ($1, $2, $3, 'requested') RETURNING id",
		userID, componentID, quantity,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed checkout: %v", err)
	}
	return id
}

func (e *testEnv) stock(t *testing.T, componentID int) int {
	t.Helper()
	var quantity int
	if err := e.pool.QueryRow(context.Background(),
		"SELECT quantity FROM components WHERE id = $1", componentID,
	).Scan(&quantity); err != nil {
		t.Fatalf("Failed to query stock: %v", err)
	}
	return quantity
}

func (e *testEnv) checkoutState(t *testing.T, id int) (status string, reason *string) {
	t.Helper()
	if err := e.pool.QueryRow(context.Background(),
		"SELECT status, rejection_reason FROM checkouts WHERE id = $1", id,
	).Scan(&status, &reason); err != nil {
		t.Fatalf("Failed to query checkout: %v", err)
	}
	return status, reason
}
