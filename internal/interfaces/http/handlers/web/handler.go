// Package web serves the server-rendered helpdesk UI.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	computerdto "fleetdesk/internal/application/computer/dto"
	entrydto "fleetdesk/internal/application/entry/dto"
	operatordto "fleetdesk/internal/application/operator/dto"
	ticketdto "fleetdesk/internal/application/ticket/dto"
	userdto "fleetdesk/internal/application/user/dto"
	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/infrastructure/cache"
	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/config"
	"fleetdesk/internal/shared/constants"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/utils"
)

type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

type Sessions interface {
	Get(ctx context.Context, id string) (*cache.Session, error)
	Save(ctx context.Context, id string, sess *cache.Session) error
	Destroy(ctx context.Context, id string) error
	AddFlash(ctx context.Context, id, level, message string) error
	PopFlashes(ctx context.Context, id string) ([]cache.Flash, error)
}

type Users interface {
	IssueToken(ctx context.Context, req userdto.TokenRequest) (*identity.Token, error)
	Logout(ctx context.Context, refreshToken string)
}

type Computers interface {
	List(ctx context.Context, page query.Page) ([]computerdto.ComputerDTO, error)
	Search(ctx context.Context, term string, page query.Page) ([]computerdto.ComputerDTO, error)
	GetByLabel(ctx context.Context, label int, page query.Page) (*computerdto.ComputerDetailDTO, error)
	RegistrationForm(ctx context.Context) (*computerdto.RegistrationForm, error)
}

type Entries interface {
	ListJobs(ctx context.Context, q entrydto.JobsQuery, page query.Page) ([]entrydto.JobDTO, error)
	CountJobs(ctx context.Context, filter string) (int64, error)
}

type Tickets interface {
	List(ctx context.Context, statuses []string, page query.Page) ([]ticketdto.TicketDTO, error)
	CountOpen(ctx context.Context) (int64, error)
	View(ctx context.Context, id int) (*ticketdto.TicketView, error)
	Create(ctx context.Context, req ticketdto.CreateTicketRequest) (int, error)
}

type Operators interface {
	List(ctx context.Context, page query.Page) ([]operatordto.OperatorDTO, error)
}

type Handler struct {
	renderer  Renderer
	sessions  Sessions
	users     Users
	computers Computers
	entries   Entries
	tickets   Tickets
	operators Operators
	session   config.SessionConfig
	startedAt time.Time
	logger    logger.Interface
}

type Deps struct {
	Renderer  Renderer
	Sessions  Sessions
	Users     Users
	Computers Computers
	Entries   Entries
	Tickets   Tickets
	Operators Operators
	Session   config.SessionConfig
	StartedAt time.Time
	Logger    logger.Interface
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		renderer:  d.Renderer,
		sessions:  d.Sessions,
		users:     d.Users,
		computers: d.Computers,
		entries:   d.Entries,
		tickets:   d.Tickets,
		operators: d.Operators,
		session:   d.Session,
		startedAt: d.StartedAt,
		logger:    d.Logger,
	}
}

// UserView is the signed-in user shown in the page header.
type UserView struct {
	Username string
	FullName string
	Role     string
}

// Page is the data every template receives.
type Page struct {
	Title   string
	User    UserView
	Flashes []cache.Flash
	Data    any
}

// LoginPage handles GET /login
func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", "Sign in", gin.H{"Next": safeNext(c.Query("next"))})
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	next := safeNext(c.PostForm("next"))

	token, err := h.users.IssueToken(ctx, userdto.TokenRequest{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	})
	if err != nil {
		h.flashRedirect(c, constants.FlashError, loginFailureMessage(err), "/login?next="+url.QueryEscape(next))
		return
	}

	// a fresh id on every login; the previous session is dropped
	if old := utils.GetSessionID(c, h.session); old != "" {
		if err := h.sessions.Destroy(ctx, old); err != nil {
			h.logger.Warnw("failed to destroy previous session", "error", err)
		}
	}

	sid := cache.NewSessionID()
	if err := h.sessions.Save(ctx, sid, &cache.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}); err != nil {
		h.logger.Errorw("failed to store session", "error", err)
		h.users.Logout(ctx, token.RefreshToken)
		h.flashRedirect(c, constants.FlashError, "Login is unavailable, please try again later", "/login")
		return
	}

	utils.SetSessionCookie(c, h.session, sid)
	c.Redirect(http.StatusFound, next)
}

// LoginRateLimited renders the refusal for a throttled login attempt.
func (h *Handler) LoginRateLimited(c *gin.Context) {
	h.flashRedirect(c, constants.FlashError, "Too many login attempts, please wait a minute", "/login")
}

func loginFailureMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Code < http.StatusInternalServerError {
		return "Invalid username or password"
	}
	return "Login is unavailable, please try again later"
}

// Logout handles POST /logout
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sid := utils.GetSessionID(c, h.session); sid != "" {
		sess, err := h.sessions.Get(ctx, sid)
		if err != nil {
			h.logger.Warnw("failed to load session", "error", err)
		}
		if sess != nil {
			h.users.Logout(ctx, sess.RefreshToken)
		}
		if err := h.sessions.Destroy(ctx, sid); err != nil {
			h.logger.Warnw("failed to destroy session", "error", err)
		}
	}

	utils.ClearSessionCookie(c, h.session)
	c.Redirect(http.StatusFound, "/login")
}

// Home handles GET /
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	openTickets, err := h.tickets.CountOpen(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	recentJobs, err := h.entries.CountJobs(ctx, "recent")
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "home", "Home", gin.H{
		"OpenTickets": openTickets,
		"RecentJobs":  recentJobs,
		"Uptime":      FormatUptime(time.Since(h.startedAt)),
	})
}

// FormatUptime renders d as "D days H hours M mins".
func FormatUptime(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%d days %d hours %d mins", total/(24*60), (total%(24*60))/60, total%60)
}

// Computers handles GET /computers
func (h *Handler) Computers(c *gin.Context) {
	ctx := c.Request.Context()
	search := strings.TrimSpace(c.Query("search"))

	var (
		computers []computerdto.ComputerDTO
		err       error
	)
	if search != "" {
		computers, err = h.computers.Search(ctx, search, query.Page{})
	} else {
		computers, err = h.computers.List(ctx, query.Page{})
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "computers", "Computers", gin.H{"Computers": computers, "Search": search})
}

// NewComputer handles GET /computers/new
func (h *Handler) NewComputer(c *gin.Context) {
	form, err := h.computers.RegistrationForm(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "computer-form", "Register computer", gin.H{
		"NextLabel":    form.NextLabel,
		"NextHostName": form.NextHostName,
		"Operators":    form.Operators,
		"Computer":     nil,
	})
}

// EditComputer handles GET /computers/edit/:label
func (h *Handler) EditComputer(c *gin.Context) {
	ctx := c.Request.Context()

	label, err := utils.ParseIntParam(c, "label", "computer label")
	if err != nil {
		h.fail(c, err)
		return
	}
	detail, err := h.computers.GetByLabel(ctx, label, query.Page{Limit: 1})
	if err != nil {
		h.fail(c, err)
		return
	}
	form, err := h.computers.RegistrationForm(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "computer-form", "Edit computer", gin.H{
		"Operators": form.Operators,
		"Computer":  detail.Computer,
	})
}

// Computer handles GET /computers/:label
func (h *Handler) Computer(c *gin.Context) {
	label, err := utils.ParseIntParam(c, "label", "computer label")
	if err != nil {
		h.fail(c, err)
		return
	}
	detail, err := h.computers.GetByLabel(c.Request.Context(), label, query.Page{})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "computer", detail.Computer.HostName, detail)
}

// Jobs handles GET /jobs
func (h *Handler) Jobs(c *gin.Context) {
	filter := c.DefaultQuery("filter", "recent")
	if filter != "all" {
		filter = "recent"
	}

	jobs, err := h.entries.ListJobs(c.Request.Context(), entrydto.JobsQuery{Filter: filter, Sort: "created_at"}, query.Page{})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "jobs", "Jobs", gin.H{"Jobs": jobs, "Filter": filter})
}

// Tickets handles GET /tickets
func (h *Handler) Tickets(c *gin.Context) {
	tickets, err := h.tickets.List(c.Request.Context(), c.QueryArray("status"), query.Page{})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "tickets", "Tickets", gin.H{"Tickets": tickets})
}

// NewTicket handles GET /tickets/new
func (h *Handler) NewTicket(c *gin.Context) {
	operators, err := h.operators.List(c.Request.Context(), query.Page{})
	if err != nil {
		h.fail(c, err)
		return
	}

	names := make([]string, 0, len(operators))
	for _, op := range operators {
		names = append(names, op.Rank+" "+op.LName+" "+op.FName)
	}
	h.render(c, http.StatusOK, "ticket-new", "Open a ticket", gin.H{"Operators": names})
}

// CreateTicket handles POST /tickets/new
func (h *Handler) CreateTicket(c *gin.Context) {
	var req ticketdto.CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flashRedirect(c, constants.FlashError, errors.Classify(utils.BindingError(err)).Message, "/tickets/new")
		return
	}

	id, err := h.tickets.Create(c.Request.Context(), req)
	if err != nil {
		h.flashRedirect(c, constants.FlashError, errors.Classify(err).Message, "/tickets/new")
		return
	}

	h.flashRedirect(c, constants.FlashInfo, fmt.Sprintf("Ticket #%d created", id), fmt.Sprintf("/tickets/%d", id))
}

// Ticket handles GET /tickets/:id
func (h *Handler) Ticket(c *gin.Context) {
	id, err := utils.ParseIntParam(c, "id", "ticket id")
	if err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.tickets.View(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "ticket", view.Title, gin.H{"Ticket": view})
}

// Operators handles GET /operators
func (h *Handler) Operators(c *gin.Context) {
	operators, err := h.operators.List(c.Request.Context(), query.Page{})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "operators", "Operators", gin.H{"Operators": operators})
}

// Forbidden handles GET /403
func (h *Handler) Forbidden(c *gin.Context) {
	message := c.DefaultQuery("message", "You are not authorized to enter this page...")
	h.render(c, http.StatusForbidden, "error-auth", "Forbidden", gin.H{"Message": message})
}

func (h *Handler) render(c *gin.Context, status int, page, title string, data any) {
	p := Page{Title: title, Data: data, User: currentUser(c)}

	if sid := utils.GetSessionID(c, h.session); sid != "" {
		flashes, err := h.sessions.PopFlashes(c.Request.Context(), sid)
		if err != nil {
			h.logger.Warnw("failed to read flash messages", "error", err)
		}
		p.Flashes = flashes
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(c.Writer, page, p); err != nil {
		h.logger.Errorw("failed to render page", "page", page, "error", err)
		c.String(http.StatusInternalServerError, constants.ErrMsgInternalServerError)
	}
}

func currentUser(c *gin.Context) UserView {
	principal, ok := authorization.GetPrincipal(c)
	if !ok {
		return UserView{}
	}
	return UserView{
		Username: principal.Username,
		FullName: principal.FullName,
		Role:     authorization.DisplayRole(principal.Roles),
	}
}

// fail renders a page-level error; client errors go back with a flash.
func (h *Handler) fail(c *gin.Context, err error) {
	appErr := errors.Classify(err)
	if appErr.Code >= http.StatusInternalServerError {
		h.logger.Errorw("page request failed", "path", c.Request.URL.Path, "error", err)
	}
	h.render(c, appErr.Code, "error-auth", appErr.Type.Kind(), gin.H{"Message": appErr.Message})
}

func (h *Handler) flashRedirect(c *gin.Context, level, message, location string) {
	sid := utils.GetSessionID(c, h.session)
	if sid == "" {
		sid = cache.NewSessionID()
		utils.SetSessionCookie(c, h.session, sid)
	}
	if err := h.sessions.AddFlash(c.Request.Context(), sid, level, message); err != nil {
		h.logger.Warnw("failed to store flash message", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
