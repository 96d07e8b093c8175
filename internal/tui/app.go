package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renatomh/gorestaurant-web/internal/api"
	"github.com/renatomh/gorestaurant-web/internal/food"
	"github.com/renatomh/gorestaurant-web/internal/service"
)

// App is the food dashboard screen.
type App struct {
	ctx      context.Context
	foods    *service.Collection
	log      *slog.Logger
	timeout  time.Duration
	currency string

	rows      []food.Food // foods after the search filter
	cursor    int
	query     string
	searching bool
	loading   bool

	form    itemForm
	editing *food.Food // selection for the edit dialog; nil when not editing
	confirm *food.Food // pending delete confirmation

	status    string
	statusErr bool
	width     int
	height    int
}

// Options configures the dashboard.
type Options struct {
	Timeout        time.Duration
	CurrencySymbol string
	Logger         *slog.Logger
}

func New(ctx context.Context, foods *service.Collection, opts Options) *App {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		ctx:      ctx,
		foods:    foods,
		log:      opts.Logger,
		timeout:  opts.Timeout,
		currency: opts.CurrencySymbol,
		form:     newItemForm(),
	}
}

func (a *App) Init() tea.Cmd {
	a.loading = true
	return a.loadCmd()
}

// messages
type foodsMsg struct {
	status string
}

type opFailedMsg struct {
	op  string
	err error
}

func (a *App) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, a.timeout)
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.foods.Load(ctx); err != nil {
			return opFailedMsg{op: "load", err: err}
		}
		return foodsMsg{status: loadedStatus(a.foods.Len())}
	}
}

func (a *App) addCmd(d food.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		created, err := a.foods.Add(ctx, d)
		if err != nil {
			return opFailedMsg{op: "add", err: err}
		}
		return foodsMsg{status: "added " + created.Name}
	}
}

func (a *App) updateCmd(id int64, d food.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		updated, err := a.foods.Update(ctx, id, d)
		if err != nil {
			return opFailedMsg{op: "update", err: err}
		}
		return foodsMsg{status: "saved " + updated.Name}
	}
}

func (a *App) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		updated, err := a.foods.ToggleAvailable(ctx, id)
		if err != nil {
			return opFailedMsg{op: "toggle", err: err}
		}
		state := "available"
		if !updated.Available {
			state = "unavailable"
		}
		return foodsMsg{status: updated.Name + " is now " + state}
	}
}

func (a *App) deleteCmd(f food.Food) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.foods.Delete(ctx, f.ID); err != nil {
			return opFailedMsg{op: "delete", err: err}
		}
		return foodsMsg{status: "removed " + f.Name}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch {
		case a.form.isOpen():
			return a.handleFormKey(m)
		case a.confirm != nil:
			return a.handleConfirmKey(m)
		case a.searching:
			return a.handleSearchKey(m)
		}
		return a.handleListKey(m)
	case foodsMsg:
		a.loading = false
		a.setStatus(m.status, false)
		// commands finish in any order; always render the collection as it is now
		a.applyRows()
	case opFailedMsg:
		a.loading = false
		a.setStatus(describe(m.op, m.err), true)
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "n":
		a.editing = nil
		return a, a.form.openCreate()
	case "e", "enter":
		sel, ok := a.selected()
		if !ok {
			a.setStatus("no plate selected", true)
			return a, nil
		}
		a.editing = &sel
		return a, a.form.openEdit(sel)
	case "a", " ":
		sel, ok := a.selected()
		if !ok {
			return a, nil
		}
		return a, a.toggleCmd(sel.ID)
	case "x", "delete", "backspace":
		sel, ok := a.selected()
		if !ok {
			return a, nil
		}
		a.confirm = &sel
	case "/":
		a.searching = true
	case "r":
		a.loading = true
		a.setStatus("loading...", false)
		return a, a.loadCmd()
	case "esc":
		if a.query != "" {
			a.query = ""
			a.applyRows()
		}
	}
	return a, nil
}

// handleFormKey drives Open -> Submitted -> Closed. The dialog closes right after
// the remote call is issued, whatever its outcome; failures land in the status line.
func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyEsc {
		a.form.close()
		a.editing = nil
		return a, nil
	}
	cmd, submitted := a.form.update(m)
	if !submitted {
		return a, cmd
	}
	d := a.form.draft()
	var op tea.Cmd
	if a.form.mode == formEdit && a.editing != nil {
		a.log.Debug("edit submitted", "id", a.editing.ID)
		op = a.updateCmd(a.editing.ID, d)
	} else {
		a.log.Debug("create submitted")
		op = a.addCmd(d)
	}
	a.form.close()
	a.editing = nil
	a.setStatus("saving...", false)
	return a, op
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		f := *a.confirm
		a.confirm = nil
		return a, a.deleteCmd(f)
	case "n", "N", "esc":
		a.confirm = nil
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.query = ""
	case tea.KeyEnter:
		a.searching = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if r := []rune(a.query); len(r) > 0 {
			a.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.query += " "
	case tea.KeyRunes:
		a.query += string(m.Runes)
	default:
		return a, nil
	}
	a.applyRows()
	return a, nil
}

func (a *App) applyRows() {
	a.rows = a.foods.Search(a.query)
	if a.cursor >= len(a.rows) {
		a.cursor = max(len(a.rows)-1, 0)
	}
}

func (a *App) selected() (food.Food, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return food.Food{}, false
	}
	return a.rows[a.cursor], true
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func loadedStatus(n int) string {
	if n == 1 {
		return "1 plate loaded"
	}
	return fmt.Sprintf("%d plates loaded", n)
}

func describe(op string, err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return op + " failed: backend unreachable"
	case errors.Is(err, api.ErrValidation):
		var re *api.RemoteError
		if errors.As(err, &re) && re.Detail != "" {
			return op + " rejected: " + re.Detail
		}
		return op + " rejected by backend"
	case errors.Is(err, api.ErrNotFound), errors.Is(err, service.ErrUnknownItem):
		return op + " failed: plate no longer exists (press r to reload)"
	default:
		return op + " failed: " + err.Error()
	}
}

func (a *App) View() string {
	body := a.renderList()
	switch {
	case a.form.isOpen():
		return renderDialog(body, a.form.view(), a.width, a.height)
	case a.confirm != nil:
		prompt := titleStyle.Render("Remove plate?") + "\n\n" +
			nameStyle.Render(a.confirm.Name) + "\n\n" +
			footerStyle.Render("[y] Yes  [n] No")
		return renderDialog(body, prompt, a.width, a.height)
	}
	return body
}

func (a *App) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GoRestaurant - Menu"))
	b.WriteString("\n")
	if a.searching || a.query != "" {
		cursor := ""
		if a.searching {
			cursor = "_"
		}
		b.WriteString(searchStyle.Render("/" + a.query + cursor))
		b.WriteString("\n")
	}
	b.WriteString(ruleStyle.Render(strings.Repeat("─", max(a.width, 40))))
	b.WriteString("\n")

	switch {
	case a.loading && len(a.rows) == 0:
		b.WriteString(mutedStyle.Render("loading plates..."))
		b.WriteString("\n")
	case len(a.rows) == 0 && a.query != "":
		b.WriteString(mutedStyle.Render("no plates match " + fmt.Sprintf("%q", a.query)))
		b.WriteString("\n")
	case len(a.rows) == 0:
		b.WriteString(mutedStyle.Render("no plates yet - press n to add one"))
		b.WriteString("\n")
	}
	for i, f := range a.rows {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		avail := availableStyle.Render("available")
		if !f.Available {
			avail = soldOutStyle.Render("unavailable")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n", marker,
			headerStyle.Render(fmt.Sprintf("%-24s", truncate(f.Name, 24))),
			priceStyle.Render(fmt.Sprintf("%12s", food.FormatPrice(a.currency, f.Price))),
			avail))
		if f.Description != "" {
			b.WriteString("    " + mutedStyle.Render(truncate(f.Description, 72)) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[n] New  [e] Edit  [a] Toggle available  [x] Remove  [/] Search  [r] Reload  [q] Quit"))
	if a.status != "" {
		b.WriteString("\n")
		if a.statusErr {
			b.WriteString(statusErrStyle.Render(a.status))
		} else {
			b.WriteString(statusOKStyle.Render(a.status))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
