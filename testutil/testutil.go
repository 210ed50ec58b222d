// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/dayfinder/auth"
	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/models"
	"github.com/danielhkuo/dayfinder/store"
)

// TestBotToken is the bot token tests sign init data with.
const TestBotToken = "12345:test-bot-token"

// SetupTestStore creates a store backed by a fresh SQLite file in a
// per-test temp directory.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dayfinder.db")
	st, err := store.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseType: "sqlite",
		BotToken:     TestBotToken,
		WebURL:       "https://dayfinder.example",
		AdminIDs:     []int64{999},
	}
}

// SignInitData builds Telegram Mini App init data for the given user,
// signed the way Telegram signs it, so auth.ValidateInitData accepts it.
func SignInitData(user auth.WebAppUser, botToken string, authDate time.Time) string {
	userJSON, _ := json.Marshal(user)

	values := url.Values{}
	values.Set("user", string(userJSON))
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("query_id", "AAF-test-query")

	// Check string: all fields except hash, sorted by key.
	// url.Values.Encode already sorts by key.
	pairs := []string{
		"auth_date=" + values.Get("auth_date"),
		"query_id=" + values.Get("query_id"),
		"user=" + values.Get("user"),
	}
	checkString := pairs[0] + "\n" + pairs[1] + "\n" + pairs[2]

	secret := hmacSum([]byte(botToken), []byte("WebAppData"))
	sum := hmacSum([]byte(checkString), secret)
	values.Set("hash", hex.EncodeToString(sum))

	return values.Encode()
}

func hmacSum(data, key []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// InitDataFor signs init data for a plain (id, name) pair with the test
// bot token, dated now.
func InitDataFor(userID int64, firstName string) string {
	return SignInitData(auth.WebAppUser{ID: userID, FirstName: firstName}, TestBotToken, time.Now())
}

// CreateTestEvent creates an event directly in the store and returns it.
func CreateTestEvent(t *testing.T, st *store.Store, ownerID int64, days ...string) *models.Event {
	t.Helper()

	if len(days) == 0 {
		days = []string{"2024-01-01", "2024-01-02"}
	}
	ev, err := st.CreateEvent("Test Poll", "A test poll", days, true, ownerID)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return ev
}

// SubmitTestVote records a vote directly through the store.
func SubmitTestVote(t *testing.T, st *store.Store, eventID string, userID int64, name string, choices map[string]models.VoteType) {
	t.Helper()

	if _, _, err := st.SubmitVote(eventID, userID, name, choices); err != nil {
		t.Fatalf("Failed to submit test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
