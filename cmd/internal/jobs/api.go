package jobs

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobdeck/cmd/identity"
	"jobdeck/cmd/internal/auth/session"
)

// Notifier receives postings after they are durably created. Used by the live
// feed; implementations must not block the request goroutine.
type Notifier interface {
	PostingCreated(p Posting)
}

// NoopNotifier discards notifications.
type NoopNotifier struct{}

func (NoopNotifier) PostingCreated(Posting) {}

// Handler wires the authenticated job endpoints to the posting store.
type Handler struct {
	log     *slog.Logger
	store   Store
	users   identity.Store
	notify  Notifier
	metrics *Metrics

	maxBodyBytes int64
	now          func() time.Time
}

// HandlerOption configures optional handler dependencies.
type HandlerOption func(*Handler)

// WithNotifier sets the posting-created notifier (default: no-op).
func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) {
		if h == nil || n == nil {
			return
		}
		h.notify = n
	}
}

// WithMetrics attaches job endpoint metrics.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		if h == nil {
			return
		}
		h.metrics = m
	}
}

// NewHandler constructs a job Handler.
func NewHandler(log *slog.Logger, store Store, users identity.Store, opts ...HandlerOption) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("jobs: nil store")
	}
	if users == nil {
		return nil, errors.New("jobs: nil identity store")
	}
	h := &Handler{
		log:          log,
		store:        store,
		users:        users,
		notify:       NoopNotifier{},
		maxBodyBytes: 64 << 10,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

// Register wires job routes onto the mux. requireAuth must be the session
// middleware; job endpoints are never exposed unauthenticated.
func (h *Handler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	if h == nil || mux == nil || requireAuth == nil {
		return
	}
	mux.Handle("/job/create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/job/filter", requireAuth(http.HandlerFunc(h.handleFilter)))
}

type postingRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func validateCreate(req postingRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Title) == "" {
		msgs = append(msgs, "Title is Required")
	}
	if strings.TrimSpace(req.Company) == "" {
		msgs = append(msgs, "Company is Required")
	}
	if strings.TrimSpace(req.Location) == "" {
		msgs = append(msgs, "Location is Required")
	}
	if strings.TrimSpace(req.Description) == "" {
		msgs = append(msgs, "Description is Required")
	}
	if len(normalizeTags(req.Tags)) == 0 {
		msgs = append(msgs, "Tags are required")
	}
	return msgs
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, ok := session.IdentityFrom(r.Context())
	if !ok {
		// Only reachable if the route was mounted without the middleware.
		writeFail(w, http.StatusUnauthorized, "token is missing")
		return
	}

	var req postingRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msgs := validateCreate(req); len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	poster, err := h.requireUser(w, r, id.UserID)
	if err != nil {
		return
	}

	p, err := h.store.Create(r.Context(), CreateInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		Tags:        req.Tags,
		PostedBy:    poster.ID,
		Now:         h.now(),
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			writeFail(w, http.StatusBadRequest, "invalid posting details")
			return
		}
		h.log.Error("jobs.create.fail", "user_id", poster.ID, "err", err)
		writeInternalError(w)
		return
	}

	h.log.Info("jobs.create.ok", "posting_id", p.ID, "user_id", poster.ID)
	h.metrics.created()
	h.notify.PostingCreated(p)
	writeSuccess(w, http.StatusCreated, "job posted successfully", p)
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, ok := session.IdentityFrom(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "token is missing")
		return
	}

	var req postingRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f := Filter{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		Tags:        normalizeTags(req.Tags),
	}
	if f.Empty() {
		writeFail(w, http.StatusBadRequest, "any one filter is required: title, company, location, description, tags")
		return
	}

	if _, err := h.requireUser(w, r, id.UserID); err != nil {
		return
	}

	list, err := h.store.List(r.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			writeFail(w, http.StatusBadRequest, "invalid filter")
			return
		}
		h.log.Error("jobs.filter.fail", "user_id", id.UserID, "err", err)
		writeInternalError(w)
		return
	}

	h.metrics.filtered()
	writeSuccess(w, http.StatusOK, "success", list)
}

// requireUser re-checks the token subject against the identity store so a
// deleted account cannot keep posting on a still-valid token. Writes the
// response itself on failure.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request, userID string) (identity.User, error) {
	u, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		if identity.IsNotFound(err) {
			writeFail(w, http.StatusUnauthorized, "user is not valid")
			return identity.User{}, err
		}
		h.log.Error("jobs.user_check.fail", "user_id", userID, "err", err)
		writeInternalError(w)
		return identity.User{}, err
	}
	return u, nil
}
