package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobdeck/cmd/identity"
	"jobdeck/cmd/internal/auth/session"
)

// Handler wires the signup/login HTTP endpoints to the identity store and the
// session token manager.
type Handler struct {
	log     *slog.Logger
	cfg     Config
	users   identity.Store
	tokens  session.TokenManager
	metrics *Metrics

	// now is injectable for tests.
	now func() time.Time

	// dummyHash keeps the unknown-email path doing a bcrypt verify so its
	// latency matches the wrong-password path.
	dummyHash string
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, tokens session.TokenManager, metrics *Metrics) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if users == nil {
		return nil, errors.New("authapi: nil identity store")
	}
	if tokens == nil {
		return nil, errors.New("authapi: nil token manager")
	}

	h := &Handler{
		log:     log,
		cfg:     cfg,
		users:   users,
		tokens:  tokens,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}

	if hash, err := identity.HashPassword("dummy-password-for-timing-only"); err == nil {
		h.dummyHash = hash
	}

	return h, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/user/signup", h.handleSignup)
	mux.HandleFunc("/user/login", h.handleLogin)
}

// ---- handlers ----

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		h.metrics.signup("bad_request")
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msgs := validateSignup(req); len(msgs) > 0 {
		h.metrics.signup("validation")
		writeValidationErrors(w, msgs)
		return
	}

	res, err := h.users.CreateUser(r.Context(), identity.CreateUserInput{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Now:           h.now(),
	})
	if err != nil {
		switch {
		case identity.IsConflict(err):
			h.metrics.signup("conflict")
			writeFail(w, http.StatusConflict, "user already exists")
		case identity.IsInvalidInput(err):
			h.metrics.signup("validation")
			writeFail(w, http.StatusBadRequest, "invalid signup details")
		default:
			h.log.Error("auth.signup.fail", "err", err)
			h.metrics.signup("error")
			writeInternalError(w)
		}
		return
	}

	h.log.Info("auth.signup.ok", "user_id", res.User.ID)
	h.metrics.signup("ok")
	writeSuccess(w, http.StatusCreated, "user registered successfully", toUserResponse(res.User))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		h.metrics.login("bad_request")
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msgs := validateLogin(req); len(msgs) > 0 {
		h.metrics.login("validation")
		writeValidationErrors(w, msgs)
		return
	}

	ctx := r.Context()
	now := h.now()

	ua, err := h.users.GetUserAuthByEmail(ctx, req.Email)
	if err != nil {
		if identity.IsNotFound(err) {
			if h.dummyHash != "" {
				_, _ = identity.VerifyPassword(req.Password, h.dummyHash)
			}
			h.metrics.login("not_registered")
			writeFail(w, http.StatusNotFound, "user is not registered, please sign up first")
			return
		}
		h.log.Error("auth.login.lookup.fail", "err", err)
		h.metrics.login("error")
		writeInternalError(w)
		return
	}

	okPw, err := identity.VerifyPassword(req.Password, ua.PasswordHash)
	if err != nil {
		// Stored hash is unreadable. This is an operational fault, never the
		// caller's.
		h.log.Error("auth.login.verify.fail", "user_id", ua.User.ID, "err", err)
		h.metrics.login("error")
		writeInternalError(w)
		return
	}
	if !okPw {
		h.metrics.login("bad_password")
		writeFail(w, http.StatusUnauthorized, "password is incorrect")
		return
	}

	token, exp, err := h.tokens.Issue(session.Identity{
		UserID:        ua.User.ID,
		Email:         ua.User.Email,
		DisplayName:   ua.User.DisplayName(),
		ContactNumber: ua.User.ContactNumber,
	}, now)
	if err != nil {
		h.log.Error("auth.login.issue.fail", "user_id", ua.User.ID, "err", err)
		h.metrics.login("error")
		writeInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     h.cfg.CookiePath,
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.log.Info("auth.login.ok", "user_id", ua.User.ID)
	h.metrics.login("ok")
	writeSuccess(w, http.StatusOK, "logged in successfully", loginData{
		User:      toUserResponse(ua.User),
		Token:     token,
		ExpiresAt: exp,
	})
}
