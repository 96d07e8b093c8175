package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/renatomh/gorestaurant-web/internal/api"
	"github.com/renatomh/gorestaurant-web/internal/food"
	"github.com/renatomh/gorestaurant-web/internal/service"
)

type stubRemote struct {
	list   []food.Food
	nextID int64
	err    error
}

func (r *stubRemote) List(ctx context.Context) ([]food.Food, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]food.Food(nil), r.list...), nil
}

func (r *stubRemote) Create(ctx context.Context, f food.Food) (food.Food, error) {
	if r.err != nil {
		return food.Food{}, r.err
	}
	r.nextID++
	f.ID = r.nextID
	return f, nil
}

func (r *stubRemote) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	if r.err != nil {
		return food.Food{}, r.err
	}
	return f, nil
}

func (r *stubRemote) Delete(ctx context.Context, id int64) error { return r.err }

func newTestApp(t *testing.T, list ...food.Food) (*App, *stubRemote) {
	t.Helper()
	remote := &stubRemote{list: list, nextID: int64(len(list))}
	a := New(context.Background(), service.NewCollection(remote, nil), Options{Timeout: time.Second, CurrencySymbol: "R$"})
	run(t, a, a.Init())
	return a, remote
}

// run executes cmd synchronously and feeds its message back, like the runtime would.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	a.Update(cmd())
}

func press(a *App, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, last = a.Update(msg)
	}
	return last
}

var plateX = food.Food{ID: 1, Name: "X", Image: "img", Price: "10.00", Description: "first", Available: true}

func TestInitLoadsFoods(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	require.Equal(t, []food.Food{plateX}, a.rows)
	require.Contains(t, a.View(), "R$ 10.00")
	require.Equal(t, "1 plate loaded", a.status)
}

func TestLoadStatusCountsPlates(t *testing.T) {
	require.Equal(t, "0 plates loaded", loadedStatus(0))
	require.Equal(t, "1 plate loaded", loadedStatus(1))
	require.Equal(t, "3 plates loaded", loadedStatus(3))
}

func TestLateResultDoesNotRollBackRows(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	first := a.addCmd(food.Draft{Name: food.String("Veggie"), Price: food.String("21.90")})()
	second := a.addCmd(food.Draft{Name: food.String("Camarão"), Price: food.String("25.90")})()

	a.Update(second)
	a.Update(first)
	require.Len(t, a.rows, 3)
	require.Equal(t, "added Veggie", a.status)
	require.Equal(t, "Camarão", a.rows[2].Name)
}

func TestLoadFailureIsSurfaced(t *testing.T) {
	remote := &stubRemote{err: &api.RemoteError{Op: "list", Err: api.ErrUnavailable}}
	a := New(context.Background(), service.NewCollection(remote, nil), Options{})
	run(t, a, a.Init())
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "backend unreachable")
	require.Empty(t, a.rows)
}

func TestCreateFlowAddsPlateAndCloses(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	press(a, "n")
	require.True(t, a.form.isOpen())
	require.Contains(t, a.View(), "New plate")

	press(a, "u", "tab", "Pizza", "tab", "19.90", "tab", "d")
	cmd := press(a, "enter")
	require.False(t, a.form.isOpen(), "dialog closes as soon as the add is issued")
	run(t, a, cmd)

	require.Len(t, a.rows, 2)
	require.Equal(t, plateX, a.rows[0])
	require.Equal(t, food.Food{ID: 2, Name: "Pizza", Image: "u", Price: "19.90", Description: "d", Available: true}, a.rows[1])
	require.False(t, a.statusErr)
}

func TestCreateFailureStillClosesDialog(t *testing.T) {
	a, remote := newTestApp(t, plateX)
	remote.err = &api.RemoteError{Op: "create", Status: 422, Detail: "name is required", Err: api.ErrValidation}
	press(a, "n")
	cmd := press(a, "ctrl+s")
	require.False(t, a.form.isOpen())
	run(t, a, cmd)

	require.Equal(t, []food.Food{plateX}, a.rows)
	require.True(t, a.statusErr)
	require.Equal(t, "add rejected: name is required", a.status)
}

func TestEscCancelsWithoutCall(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	press(a, "n", "Soup")
	cmd := press(a, "esc")
	require.Nil(t, cmd)
	require.False(t, a.form.isOpen())
	require.Len(t, a.rows, 1)
}

func TestEditFlowMergesSelection(t *testing.T) {
	other := food.Food{ID: 2, Name: "Y", Price: "5.00", Available: true}
	a, _ := newTestApp(t, plateX, other)
	press(a, "e")
	require.True(t, a.form.isOpen())
	require.NotNil(t, a.editing)
	require.Equal(t, int64(1), a.editing.ID)
	require.Contains(t, a.View(), "Edit plate")

	cmd := press(a, " Especial", "ctrl+s")
	require.Nil(t, a.editing)
	run(t, a, cmd)

	want := plateX
	want.Name = "X Especial"
	require.Equal(t, []food.Food{want, other}, a.rows)
}

func TestToggleAvailability(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	run(t, a, press(a, "a"))
	require.False(t, a.rows[0].Available)
	require.Contains(t, a.status, "unavailable")
	require.Contains(t, a.View(), "unavailable")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	two := food.Food{ID: 2, Name: "Pizza", Available: true}
	a, remote := newTestApp(t, plateX, two)
	press(a, "down", "x")
	require.NotNil(t, a.confirm)
	require.Contains(t, a.View(), "Remove plate?")

	require.Nil(t, press(a, "n"))
	require.Nil(t, a.confirm)
	require.Len(t, a.rows, 2)

	remote.err = errors.New("offline")
	press(a, "x")
	run(t, a, press(a, "y"))
	require.Len(t, a.rows, 2)
	require.True(t, a.statusErr)

	remote.err = nil
	press(a, "x")
	run(t, a, press(a, "y"))
	require.Equal(t, []food.Food{plateX}, a.rows)
	require.Equal(t, 0, a.cursor)
}

func TestSearchFiltersRows(t *testing.T) {
	a, _ := newTestApp(t, plateX, food.Food{ID: 2, Name: "Pizza Margherita", Price: "30.00"})
	press(a, "/", "p", "i", "z")
	require.True(t, a.searching)
	require.Len(t, a.rows, 1)
	require.Equal(t, int64(2), a.rows[0].ID)

	press(a, "enter")
	require.False(t, a.searching)
	require.Equal(t, "piz", a.query)
	require.Contains(t, a.View(), "/piz")

	press(a, "esc")
	require.Empty(t, a.query)
	require.Len(t, a.rows, 2)
}

func TestViewOverlaysDialogWhenSized(t *testing.T) {
	a, _ := newTestApp(t, plateX)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	press(a, "n")
	out := a.View()
	require.Len(t, strings.Split(out, "\n"), 30)
	require.Contains(t, out, "New plate")
	require.Contains(t, out, "GoRestaurant")
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t)
	cmd := press(a, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}
