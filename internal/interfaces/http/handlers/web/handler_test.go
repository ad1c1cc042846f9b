package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	computerdto "fleetdesk/internal/application/computer/dto"
	entrydto "fleetdesk/internal/application/entry/dto"
	operatordto "fleetdesk/internal/application/operator/dto"
	ticketdto "fleetdesk/internal/application/ticket/dto"
	userdto "fleetdesk/internal/application/user/dto"
	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/infrastructure/cache"
	pagetemplate "fleetdesk/internal/infrastructure/template"
	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/config"
	"fleetdesk/internal/shared/constants"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

var testSession = config.SessionConfig{CookieName: "fleetdesk_session", MaxAge: time.Hour}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*cache.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*cache.Session{}}
}

func (m *memorySessions) Get(_ context.Context, id string) (*cache.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *memorySessions) Save(_ context.Context, id string, sess *cache.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = sess
	return nil
}

func (m *memorySessions) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) AddFlash(_ context.Context, id, level, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		sess = &cache.Session{}
		m.sessions[id] = sess
	}
	sess.Flashes = append(sess.Flashes, cache.Flash{Level: level, Message: message})
	return nil
}

func (m *memorySessions) PopFlashes(_ context.Context, id string) ([]cache.Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	return flashes, nil
}

type fakeUsers struct {
	loggedOut []string
}

func (f *fakeUsers) IssueToken(_ context.Context, req userdto.TokenRequest) (*identity.Token, error) {
	switch {
	case req.Username == "jdoe" && req.Password == "secret":
		return &identity.Token{AccessToken: "access", RefreshToken: "refresh"}, nil
	case req.Username == "down":
		return nil, errors.NewUnexpectedError("identity provider unavailable")
	default:
		return nil, errors.NewInvalidLoginError().AppError
	}
}

func (f *fakeUsers) Logout(_ context.Context, refreshToken string) {
	f.loggedOut = append(f.loggedOut, refreshToken)
}

func strPtr(s string) *string { return &s }

type fakeComputers struct{}

var sampleComputer = computerdto.ComputerDTO{
	UUIDLabel:   7,
	HostName:    "HOST-00007",
	MACAddress:  "00:1a:2b:3c:4d:5e",
	IPv4Address: "10.0.0.7",
	Network:     "10.0.0",
	OS:          "Windows 10",
	UserName:    strPtr("Alice"),
}

func (fakeComputers) List(context.Context, query.Page) ([]computerdto.ComputerDTO, error) {
	return []computerdto.ComputerDTO{sampleComputer}, nil
}

func (fakeComputers) Search(_ context.Context, term string, _ query.Page) ([]computerdto.ComputerDTO, error) {
	if strings.Contains(sampleComputer.HostName, term) {
		return []computerdto.ComputerDTO{sampleComputer}, nil
	}
	return []computerdto.ComputerDTO{}, nil
}

func (fakeComputers) GetByLabel(_ context.Context, label int, _ query.Page) (*computerdto.ComputerDetailDTO, error) {
	if label != sampleComputer.UUIDLabel {
		return nil, errors.NewValidationError("Computer with label does not exist...")
	}
	return &computerdto.ComputerDetailDTO{
		Computer: sampleComputer,
		Entries: entrydto.HistoryDTO{Count: 1, History: []entrydto.EntryDTO{
			{UUID: 3, UUIDLabel: 7, CreatedBy: "jdoe", Reason: "reimage", CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		}},
	}, nil
}

func (fakeComputers) RegistrationForm(context.Context) (*computerdto.RegistrationForm, error) {
	return &computerdto.RegistrationForm{NextLabel: 8, NextHostName: "HOST-00008", Operators: []string{"Sgt Doe John"}}, nil
}

type fakeEntries struct{}

func (fakeEntries) ListJobs(_ context.Context, q entrydto.JobsQuery, _ query.Page) ([]entrydto.JobDTO, error) {
	return []entrydto.JobDTO{{EntryDTO: entrydto.EntryDTO{UUID: 3, UUIDLabel: 7, Reason: "reimage-" + q.Filter}, HostName: "HOST-00007"}}, nil
}

func (fakeEntries) CountJobs(context.Context, string) (int64, error) { return 4, nil }

type fakeTickets struct {
	created []ticketdto.CreateTicketRequest
}

func (f *fakeTickets) List(_ context.Context, statuses []string, _ query.Page) ([]ticketdto.TicketDTO, error) {
	for _, s := range statuses {
		if s != "open" && s != "closed" && s != "in_progress" {
			return nil, errors.NewValidationError("unknown ticket status: " + s)
		}
	}
	return []ticketdto.TicketDTO{{ID: 11, Title: "Printer jam", Status: "open", Priority: "high"}}, nil
}

func (f *fakeTickets) CountOpen(context.Context) (int64, error) { return 2, nil }

func (f *fakeTickets) View(_ context.Context, id int) (*ticketdto.TicketView, error) {
	if id != 11 {
		return nil, errors.NewValidationError("Ticket with id does not exist...")
	}
	return &ticketdto.TicketView{
		TicketDTO: ticketdto.TicketDTO{ID: 11, Title: "Printer jam", Status: "open"},
		DescrHTML: "<p><strong>tray 2</strong></p>",
	}, nil
}

func (f *fakeTickets) Create(_ context.Context, req ticketdto.CreateTicketRequest) (int, error) {
	f.created = append(f.created, req)
	return 12, nil
}

type fakeOperators struct{}

func (fakeOperators) List(context.Context, query.Page) ([]operatordto.OperatorDTO, error) {
	return []operatordto.OperatorDTO{{ID: 1, Rank: "Sgt", LName: "Doe", FName: "John"}}, nil
}

type fixture struct {
	handler  *Handler
	sessions *memorySessions
	users    *fakeUsers
	tickets  *fakeTickets
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer := pagetemplate.NewPageRenderer("", logger.NewLogger())
	require.NoError(t, renderer.Load())

	f := &fixture{sessions: newMemorySessions(), users: &fakeUsers{}, tickets: &fakeTickets{}}
	f.handler = NewHandler(Deps{
		Renderer:  renderer,
		Sessions:  f.sessions,
		Users:     f.users,
		Computers: fakeComputers{},
		Entries:   fakeEntries{},
		Tickets:   f.tickets,
		Operators: fakeOperators{},
		Session:   testSession,
		StartedAt: time.Now().Add(-(26*time.Hour + 5*time.Minute)),
		Logger:    logger.NewLogger(),
	})

	signedIn := func(c *gin.Context) {
		authorization.SetPrincipal(c, authorization.Principal{Username: "jdoe", FullName: "John Doe", Roles: []string{"Helpdesk"}})
		c.Next()
	}

	r := gin.New()
	r.GET("/login", f.handler.LoginPage)
	r.POST("/login", f.handler.Login)
	r.POST("/logout", f.handler.Logout)
	r.GET("/403", f.handler.Forbidden)

	pages := r.Group("/", signedIn)
	pages.GET("/", f.handler.Home)
	pages.GET("/computers", f.handler.Computers)
	pages.GET("/computers/new", f.handler.NewComputer)
	pages.GET("/computers/edit/:label", f.handler.EditComputer)
	pages.GET("/computers/:label", f.handler.Computer)
	pages.GET("/jobs", f.handler.Jobs)
	pages.GET("/tickets", f.handler.Tickets)
	pages.GET("/tickets/new", f.handler.NewTicket)
	pages.POST("/tickets/new", f.handler.CreateTicket)
	pages.GET("/tickets/:id", f.handler.Ticket)
	pages.GET("/operators", f.handler.Operators)

	f.router = r
	return f
}

func (f *fixture) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testSession.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0 days 0 hours 0 mins", FormatUptime(30*time.Second))
	assert.Equal(t, "1 days 2 hours 5 mins", FormatUptime(26*time.Hour+5*time.Minute+10*time.Second))
	assert.Equal(t, "10 days 0 hours 59 mins", FormatUptime(240*time.Hour+59*time.Minute))
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/tickets/3":          "/tickets/3",
		"https://evil.test/":  "/",
		"//evil.test":         "/",
		"/\\evil.test":        "/",
		"computers":           "/",
		"/computers?search=a": "/computers?search=a",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestLoginPage_CarriesNext(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/login?next=%2Ftickets%2F11", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `name="next" value="/tickets/11"`)
	assert.NotContains(t, w.Body.String(), "<header>")
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/login", url.Values{"username": {"jdoe"}, "password": {"secret"}, "next": {"/tickets"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets", w.Header().Get("Location"))

	ck := sessionCookie(w)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)

	sess, _ := f.sessions.Get(context.Background(), ck.Value)
	require.NotNil(t, sess)
	assert.Equal(t, "access", sess.AccessToken)
	assert.Equal(t, "refresh", sess.RefreshToken)
}

func TestLogin_ReplacesPreviousSession(t *testing.T) {
	f := newFixture(t)
	_ = f.sessions.Save(context.Background(), "old-sid", &cache.Session{AccessToken: "stale"})

	w := f.do(http.MethodPost, "/login", url.Values{"username": {"jdoe"}, "password": {"secret"}},
		&http.Cookie{Name: testSession.CookieName, Value: "old-sid"})

	require.Equal(t, http.StatusFound, w.Code)
	old, _ := f.sessions.Get(context.Background(), "old-sid")
	assert.Nil(t, old)
	ck := sessionCookie(w)
	require.NotNil(t, ck)
	assert.NotEqual(t, "old-sid", ck.Value)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		message  string
	}{
		{"bad credentials", "jdoe", "Invalid username or password"},
		{"identity provider down", "down", "Login is unavailable, please try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			w := f.do(http.MethodPost, "/login", url.Values{"username": {tt.username}, "password": {"wrong"}, "next": {"https://evil.test"}})

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login?next=%2F", w.Header().Get("Location"))

			ck := sessionCookie(w)
			require.NotNil(t, ck)
			sess, _ := f.sessions.Get(context.Background(), ck.Value)
			require.NotNil(t, sess)
			assert.False(t, sess.Authenticated())

			page := f.do(http.MethodGet, "/login", nil, ck)
			assert.Contains(t, page.Body.String(), `flash-`+constants.FlashError)
			assert.Contains(t, page.Body.String(), tt.message)

			again := f.do(http.MethodGet, "/login", nil, ck)
			assert.NotContains(t, again.Body.String(), tt.message)
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	f := newFixture(t)
	f.router.POST("/throttled", f.handler.LoginRateLimited)

	w := f.do(http.MethodPost, "/throttled", url.Values{"username": {"jdoe"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	ck := sessionCookie(w)
	require.NotNil(t, ck)
	flashes, _ := f.sessions.PopFlashes(context.Background(), ck.Value)
	require.Len(t, flashes, 1)
	assert.Contains(t, flashes[0].Message, "Too many login attempts")
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	_ = f.sessions.Save(context.Background(), "sid", &cache.Session{AccessToken: "a", RefreshToken: "r"})

	w := f.do(http.MethodPost, "/logout", nil, &http.Cookie{Name: testSession.CookieName, Value: "sid"})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, []string{"r"}, f.users.loggedOut)
	sess, _ := f.sessions.Get(context.Background(), "sid")
	assert.Nil(t, sess)
	assert.Nil(t, sessionCookie(w))
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "<strong>Helpdesk</strong>")
	assert.Contains(t, body, "1 days 2 hours 5 mins")
	assert.Contains(t, body, "<p>2</p>")
	assert.Contains(t, body, "<p>4</p>")
}

func TestComputers_ListAndSearch(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/computers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HOST-00007")
	assert.Contains(t, w.Body.String(), "Alice")

	w = f.do(http.MethodGet, "/computers?search=NOPE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 computers")
	assert.Contains(t, w.Body.String(), `value="NOPE"`)
}

func TestComputerPages(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/computers/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>HOST-00007 | Fleetdesk</title>")
	assert.Contains(t, w.Body.String(), "2024-03-01 09:30")

	w = f.do(http.MethodGet, "/computers/new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HOST-00008")
	assert.Contains(t, w.Body.String(), "Sgt Doe John")

	w = f.do(http.MethodGet, "/computers/edit/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HOST-00007")
}

func TestComputerPage_Errors(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/computers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Value Error")

	w = f.do(http.MethodGet, "/computers/99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestJobs(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reimage-recent")

	w = f.do(http.MethodGet, "/jobs?filter=all", nil)
	assert.Contains(t, w.Body.String(), "reimage-all")

	w = f.do(http.MethodGet, "/jobs?filter=bogus", nil)
	assert.Contains(t, w.Body.String(), "reimage-recent")
}

func TestTickets(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/tickets?status=open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Printer jam")

	w = f.do(http.MethodGet, "/tickets?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown ticket status")
}

func TestTicketPage_RendersMarkdownHTML(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/tickets/11", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>tray 2</strong>")
}

func TestNewTicket(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/tickets/new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<option>Sgt Doe John</option>")

	w = f.do(http.MethodPost, "/tickets/new", url.Values{
		"created_by": {"Sgt Doe John"},
		"priority":   {"high"},
		"title":      {"Monitor flickers"},
		"phone":      {"5551234"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/12", w.Header().Get("Location"))
	require.Len(t, f.tickets.created, 1)
	assert.Equal(t, "Monitor flickers", f.tickets.created[0].Title)
	require.NotNil(t, f.tickets.created[0].Phone)
	assert.Equal(t, "5551234", *f.tickets.created[0].Phone)

	ck := sessionCookie(w)
	require.NotNil(t, ck)
	flashes, _ := f.sessions.PopFlashes(context.Background(), ck.Value)
	require.Len(t, flashes, 1)
	assert.Equal(t, constants.FlashInfo, flashes[0].Level)
	assert.Equal(t, "Ticket #12 created", flashes[0].Message)
}

func TestNewTicket_Invalid(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/tickets/new", url.Values{"priority": {"high"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/new", w.Header().Get("Location"))
	assert.Empty(t, f.tickets.created)
}

func TestOperators(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/operators", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Doe")
}

func TestForbidden(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/403?message=Helpdesk+role+required", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Helpdesk role required")

	w = f.do(http.MethodGet, "/403?message=%3Cscript%3E", nil)
	assert.NotContains(t, w.Body.String(), "<script>")
}
