// Package console implements the interactive terminal client: a single
// session, three mutually exclusive views (login, user, admin), and a
// line-oriented command loop driving the HTTP client.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/libroteca/librocli/internal/api"
	"github.com/libroteca/librocli/internal/mockapi"
	"github.com/libroteca/librocli/internal/models"
	"github.com/libroteca/librocli/internal/session"
	"github.com/libroteca/librocli/internal/token"
)

type View string

const (
	ViewLogin View = "login"
	ViewUser  View = "user"
	ViewAdmin View = "admin"
)

type NoticeScope string

const (
	ScopeGlobal NoticeScope = "global"
	ScopeUser   NoticeScope = "user"
	ScopeAdmin  NoticeScope = "admin"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeDanger  NoticeLevel = "danger"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// Panel identifies which auxiliary admin panel is showing; they are
// mutually exclusive.
type Panel string

const (
	PanelNone      Panel = ""
	PanelUsers     Panel = "users"
	PanelResources Panel = "resources"
)

type libroForm struct {
	ID     int64
	Titulo string
	Autor  string
	Isbn   string
}

// Controller owns the session and all view state. It is single-threaded:
// one command at a time, suspension points only at network calls.
type Controller struct {
	client   *api.Client
	session  *session.Session
	pageSize int

	in  *bufio.Scanner
	out io.Writer

	view      View
	busy      int
	selection *models.Libro
	form      libroForm
	page      *Page
	pageIndex int
	panel     Panel
	notices   map[NoticeScope]Notice
	lastOut   string
	styles    styles
	quit      bool
}

type Options struct {
	Input    io.Reader
	Output   io.Writer
	PageSize int
}

func New(client *api.Client, opts Options) *Controller {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	c := &Controller{
		client:   client,
		session:  session.New(),
		pageSize: pageSize,
		in:       bufio.NewScanner(opts.Input),
		out:      opts.Output,
		view:     ViewLogin,
		notices:  make(map[NoticeScope]Notice),
		styles:   newStyles(),
	}
	client.SetTokenSource(c.session.Credential)
	client.SetSessionExpiredHook(func() {
		c.logout("Session expired. Sign in again.")
	})
	return c
}

// State accessors, used by tests and the cmd package.

func (c *Controller) View() View             { return c.view }
func (c *Controller) Busy() int              { return c.busy }
func (c *Controller) Selection() *models.Libro { return c.selection }
func (c *Controller) Panel() Panel           { return c.panel }
func (c *Controller) Page() *Page            { return c.page }
func (c *Controller) LastOutput() string     { return c.lastOut }

func (c *Controller) Notice(scope NoticeScope) (Notice, bool) {
	n, ok := c.notices[scope]
	return n, ok
}

// Run drives the command loop until quit or EOF.
func (c *Controller) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "librocli (%s)\n", c.client.BaseURL())
	fmt.Fprintln(c.out, `Type "help" for commands.`)
	for !c.quit {
		fmt.Fprintf(c.out, "[%s]> ", c.view)
		line, ok := c.readLine()
		if !ok {
			break
		}
		c.dispatch(ctx, line)
	}
	return c.in.Err()
}

func (c *Controller) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		c.printHelp()
		return
	case "quit", "exit":
		c.quit = true
		return
	case "out":
		fmt.Fprintln(c.out, c.lastOut)
		return
	case "clear":
		c.hideAllNotices()
		c.lastOut = ""
		c.clearPanels()
		return
	}

	if c.busy > 0 {
		c.setNotice(ScopeGlobal, NoticeWarning, "Another operation is in flight.")
		return
	}

	switch c.view {
	case ViewLogin:
		c.dispatchLogin(ctx, cmd, args)
	case ViewUser:
		c.dispatchUser(ctx, cmd, args)
	case ViewAdmin:
		c.dispatchAdmin(ctx, cmd, args)
	}
}

func (c *Controller) dispatchLogin(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "login":
		email, password := "", ""
		if len(args) > 0 {
			email = args[0]
		}
		if len(args) > 1 {
			password = args[1]
		}
		if email == "" {
			email = strings.TrimSpace(c.promptLine("Email: "))
		}
		if password == "" {
			password = c.promptLine("Password: ")
		}
		c.login(ctx, email, password)
	case "preset":
		c.applyPreset(args)
	default:
		c.unknownCommand(cmd)
	}
}

func (c *Controller) dispatchUser(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "list", "refresh":
		c.loadPage(ctx, c.pageIndex)
	case "next":
		if c.page == nil || !c.page.HasNext() {
			c.setNotice(ScopeUser, NoticeWarning, "Already on the last known page.")
			return
		}
		c.loadPage(ctx, c.pageIndex+1)
	case "prev":
		if c.page == nil || !c.page.HasPrev() {
			c.setNotice(ScopeUser, NoticeWarning, "Already on the first page.")
			return
		}
		c.loadPage(ctx, c.pageIndex-1)
	case "logout":
		c.logout("")
	default:
		c.unknownCommand(cmd)
	}
}

func (c *Controller) dispatchAdmin(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "refresh":
		c.adminRefresh(ctx)
	case "create":
		c.adminCreate(ctx)
	case "edit":
		id, ok := parseID(args)
		if !ok {
			c.setNotice(ScopeAdmin, NoticeWarning, "Usage: edit <id>")
			return
		}
		c.adminEdit(ctx, id)
	case "update":
		c.adminUpdate(ctx)
	case "delete":
		var id int64
		if len(args) > 0 {
			parsed, ok := parseID(args)
			if !ok {
				c.setNotice(ScopeAdmin, NoticeWarning, "Usage: delete [id]")
				return
			}
			id = parsed
		}
		c.adminDelete(ctx, id)
	case "new":
		c.hideAllNotices()
		c.clearForm()
		fmt.Fprintln(c.out, "form cleared")
	case "users":
		c.adminUsers(ctx)
	case "resources":
		c.adminResources(ctx)
	case "logout":
		c.logout("")
	default:
		c.unknownCommand(cmd)
	}
}

// login exchanges credentials for a token and routes to the view the
// derived roles justify.
func (c *Controller) login(ctx context.Context, email, password string) {
	c.hideAllNotices()
	if email == "" || password == "" {
		c.setNotice(ScopeGlobal, NoticeWarning, "Email and password are required.")
		return
	}

	done := c.trackBusy()
	defer done()

	credential, _, err := c.client.SignIn(ctx, email, password)
	if err != nil {
		c.session.Clear()
		c.view = ViewLogin
		c.setNotice(ScopeGlobal, NoticeDanger, "Login failed: "+err.Error())
		c.setOutError(err)
		return
	}

	c.session.Start(credential)
	c.routeAfterSignIn(ctx)
}

func (c *Controller) routeAfterSignIn(ctx context.Context) {
	claims := c.session.Claims()
	roles := token.Roles(claims)
	identity := token.Identity(claims)

	c.hideAllNotices()
	c.clearPanels()
	c.clearForm()

	mode := "USER"
	if token.IsAdmin(roles) {
		mode = "ADMIN"
		c.view = ViewAdmin
	} else {
		c.view = ViewUser
	}
	fmt.Fprintf(c.out, "Signed in as %s [%s]\n", orDash(identity), strings.Join(roles, ", "))
	c.setOutValue(map[string]any{"mode": mode, "email": identity, "roles": roles})

	if c.view == ViewAdmin {
		c.adminRefresh(ctx)
	} else {
		c.pageIndex = 0
		c.loadPage(ctx, 0)
	}
}

// logout destroys the session and returns to the login view, clearing
// everything either privileged view rendered.
func (c *Controller) logout(msg string) {
	c.session.Clear()
	c.view = ViewLogin
	c.page = nil
	c.pageIndex = 0
	c.clearPanels()
	c.clearForm()
	c.lastOut = ""
	if msg != "" {
		c.setNotice(ScopeGlobal, NoticeWarning, msg)
	} else {
		fmt.Fprintln(c.out, "logged out")
	}
}

func (c *Controller) applyPreset(args []string) {
	c.hideAllNotices()
	preset := ""
	if len(args) > 0 {
		preset = args[0]
	}
	switch preset {
	case "user":
		fmt.Fprintf(c.out, "demo credentials: login %s %s\n", mockapi.DemoUserEmail, mockapi.DemoUserPassword)
	case "admin":
		c.setNotice(ScopeGlobal, NoticeWarning, "ADMIN demo credentials are for demos only. Never use them in production.")
		fmt.Fprintf(c.out, "demo credentials: login %s %s\n", mockapi.DemoAdminEmail, mockapi.DemoAdminPassword)
	default:
		c.setNotice(ScopeGlobal, NoticeWarning, "Usage: preset user|admin")
	}
}

// trackBusy increments the busy counter for the duration of one
// operation. Nested operations (create triggering refresh) stack.
func (c *Controller) trackBusy() func() {
	c.busy++
	return func() {
		c.busy--
		if c.busy < 0 {
			c.busy = 0
		}
	}
}

func (c *Controller) setNotice(scope NoticeScope, level NoticeLevel, msg string) {
	c.notices[scope] = Notice{Level: level, Message: msg}
	style := c.styles.level(level)
	fmt.Fprintf(c.out, "%s %s\n", style.Render("["+string(level)+"]"), msg)
}

func (c *Controller) hideAllNotices() {
	for scope := range c.notices {
		delete(c.notices, scope)
	}
}

func (c *Controller) clearPanels() {
	c.panel = PanelNone
}

func (c *Controller) clearForm() {
	c.selection = nil
	c.form = libroForm{}
}

func (c *Controller) fillForm(libro models.Libro) {
	copied := libro
	c.selection = &copied
	c.form = libroForm{ID: libro.ID, Titulo: libro.Titulo, Autor: libro.Autor, Isbn: libro.Isbn}
}

// setOutValue stores a locally built value in the diagnostic pane.
func (c *Controller) setOutValue(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.lastOut = fmt.Sprintf("%v", v)
		return
	}
	c.lastOut = string(data)
}

func (c *Controller) setOutResponse(resp api.Response) {
	c.lastOut = resp.Pretty()
}

func (c *Controller) setOutError(err error) {
	c.setOutValue(map[string]string{"error": err.Error()})
}

func (c *Controller) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Controller) promptLine(label string) string {
	fmt.Fprint(c.out, label)
	line, _ := c.readLine()
	return line
}

func (c *Controller) confirm(label string) bool {
	answer := strings.ToLower(strings.TrimSpace(c.promptLine(label)))
	return answer == "y" || answer == "yes"
}

func (c *Controller) unknownCommand(cmd string) {
	fmt.Fprintf(c.out, "unknown command %q, type \"help\"\n", cmd)
}

func (c *Controller) printHelp() {
	switch c.view {
	case ViewLogin:
		fmt.Fprintln(c.out, "commands: login [email [password]] | preset user|admin | out | clear | quit")
	case ViewUser:
		fmt.Fprintln(c.out, "commands: list | next | prev | refresh | out | clear | logout | quit")
	case ViewAdmin:
		fmt.Fprintln(c.out, "commands: refresh | create | edit <id> | update | delete [id] | new | users | resources | out | clear | logout | quit")
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
