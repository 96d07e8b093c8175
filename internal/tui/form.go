package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renatomh/gorestaurant-web/internal/food"
)

type formState int

const (
	formClosed formState = iota
	formOpen
	formSubmitted
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Image URL", "Name", "Price", "Description"}

// itemForm is the dialog body for creating or editing a plate.
type itemForm struct {
	state  formState
	mode   formMode
	focus  int
	inputs [fieldCount]textinput.Model
}

func newItemForm() itemForm {
	var f itemForm
	placeholders := [fieldCount]string{"Paste the link here", "Ex: Moda Italiana", "Ex: 19.90", "Description"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 40
		f.inputs[i] = in
	}
	return f
}

// openCreate shows an empty form.
func (f *itemForm) openCreate() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.mode = formCreate
	f.state = formOpen
	return f.setFocus(fieldImage)
}

// openEdit shows the form prefilled from prev.
func (f *itemForm) openEdit(prev food.Food) tea.Cmd {
	f.inputs[fieldImage].SetValue(prev.Image)
	f.inputs[fieldName].SetValue(prev.Name)
	f.inputs[fieldPrice].SetValue(prev.Price)
	f.inputs[fieldDescription].SetValue(prev.Description)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.mode = formEdit
	f.state = formOpen
	return f.setFocus(fieldName)
}

func (f *itemForm) close() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.state = formClosed
}

func (f *itemForm) isOpen() bool { return f.state == formOpen }

func (f *itemForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// update routes a key to the form. submitted reports that the user confirmed.
func (f *itemForm) update(msg tea.KeyMsg) (cmd tea.Cmd, submitted bool) {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1), false
	case "ctrl+s":
		f.state = formSubmitted
		return nil, true
	case "enter":
		if f.focus == fieldCount-1 {
			f.state = formSubmitted
			return nil, true
		}
		return f.setFocus(f.focus + 1), false
	}
	var c tea.Cmd
	f.inputs[f.focus], c = f.inputs[f.focus].Update(msg)
	return c, false
}

// draft collects the entered values. Create drafts skip blank fields;
// edit drafts carry every field so clearing one is an edit too.
func (f *itemForm) draft() food.Draft {
	value := func(i int) *string {
		v := strings.TrimSpace(f.inputs[i].Value())
		if v == "" && f.mode == formCreate {
			return nil
		}
		return &v
	}
	return food.Draft{
		Image:       value(fieldImage),
		Name:        value(fieldName),
		Price:       value(fieldPrice),
		Description: value(fieldDescription),
	}
}

func (f *itemForm) view() string {
	title := "New plate"
	action := "Add plate"
	if f.mode == formEdit {
		title = "Edit plate"
		action = "Save changes"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = cursorStyle.Render("▶ ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[tab] Next  [ctrl+s] " + action + "  [esc] Cancel"))
	return b.String()
}
