// Package main provides a CI-friendly smoke test for the jobdeck live feed.
//
// It validates:
//   - signup + login against a running server
//   - session cookie transport into the WebSocket handshake
//   - subprotocol selection
//   - posting.created fanout after /job/create
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
)

const feedSubprotocol = "jobdeck.feed.v1"

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type feedEvent struct {
	Type    string `json:"type"`
	Posting struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"posting"`
}

func main() {
	baseURL := flag.String("base", "http://127.0.0.1:8080", "server base URL")
	timeout := flag.Duration("timeout", 20*time.Second, "overall deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, strings.TrimRight(*baseURL, "/")); err != nil {
		fmt.Fprintln(os.Stderr, "feed-smoke: FAIL:", err)
		os.Exit(1)
	}
	fmt.Println("feed-smoke: OK")
}

func run(ctx context.Context, base string) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	hc := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	// A unique email per run keeps the smoke test re-runnable.
	email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())
	password := "smoke-pass-1"

	signup := map[string]any{
		"firstName":       "Smoke",
		"lastName":        "Test",
		"email":           email,
		"password":        password,
		"confirmPassword": password,
		"contactNumber":   "5550001234",
	}
	if _, err := postJSON(ctx, hc, base+"/user/signup", signup, http.StatusCreated); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	login := map[string]any{"email": email, "password": password}
	if _, err := postJSON(ctx, hc, base+"/user/login", login, http.StatusOK); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/job/feed"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPClient:   hc,
		Subprotocols: []string{feedSubprotocol},
		HTTPHeader:   http.Header{"Origin": []string{base}},
	})
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	if sp := conn.Subprotocol(); sp != feedSubprotocol {
		return fmt.Errorf("subprotocol = %q, want %q", sp, feedSubprotocol)
	}

	title := fmt.Sprintf("Smoke Engineer %d", time.Now().UnixNano())
	posting := map[string]any{
		"title":       title,
		"company":     "Smoke Inc",
		"location":    "Remote",
		"description": "created by feed-smoke",
		"tags":        []string{"smoke"},
	}
	if _, err := postJSON(ctx, hc, base+"/job/create", posting, http.StatusCreated); err != nil {
		return fmt.Errorf("job create: %w", err)
	}

	// The creation event must arrive on the already-open feed.
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read feed: %w", err)
		}
		var ev feedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		if ev.Type != "posting.created" {
			continue
		}
		if ev.Posting.Title != title {
			// Another client's posting; keep waiting for ours.
			continue
		}
		if ev.Posting.ID == "" {
			return errors.New("posting.created without id")
		}
		return nil
	}
}

func postJSON(ctx context.Context, hc *http.Client, url string, body any, wantStatus int) (apiEnvelope, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return apiEnvelope{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return apiEnvelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return apiEnvelope{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apiEnvelope{}, fmt.Errorf("decode %s response: %w", url, err)
	}
	if resp.StatusCode != wantStatus {
		return env, fmt.Errorf("%s: status %d (message=%q errors=%v)", url, resp.StatusCode, env.Message, env.Errors)
	}
	if !env.Success {
		return env, fmt.Errorf("%s: success=false (message=%q)", url, env.Message)
	}
	return env, nil
}
