package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/mleija/remindd/internal/config"
	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/notify"
	"github.com/mleija/remindd/internal/scheduler"
	"github.com/mleija/remindd/internal/storage"
)

type View string

const (
	ViewList       View = "list"
	ViewAdd        View = "add"
	ViewReschedule View = "reschedule"
	ViewTasks      View = "tasks"
	ViewDecision   View = "decision"
	ViewSettings   View = "settings"
	ViewSounds     View = "sounds"
	ViewReport     View = "report"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Deps collects everything the TUI acts on. The engine keeps running in
// the background; the model only reads its review channel and mutates
// the shared store.
type Deps struct {
	Store        *storage.Store
	Engine       *scheduler.Engine
	Gate         *scheduler.Gate
	Notifier     *notify.Notifier
	Player       notify.SoundPlayer
	Settings     config.Settings
	SettingsPath string
	Logger       *slog.Logger
}

type Model struct {
	CurrentView View
	Status      StatusBar
	Quitting    bool

	deps  Deps
	clock func() time.Time

	List       ListState
	Add        AddForm
	Reschedule RescheduleState
	Tasks      TasksState
	Decision   DecisionState
	Settings   SettingsState
	Sounds     SoundsState
	Report     ReportState
	Palette    PaletteState
}

type ListState struct {
	Cursor   int
	Snapshot []model.Reminder
}

// AddForm field order. The recurrence and sound rows are cycled in
// place instead of typed.
const (
	addFieldMessage = iota
	addFieldTasks
	addFieldDate
	addFieldHour
	addFieldMinute
	addFieldRecurrence
	addFieldInterval
	addFieldSound
	addFieldCount
)

type AddForm struct {
	Inputs       []textinput.Model
	Focus        int
	Recurrence   model.Recurrence
	SoundChoices []string
	SoundIdx     int
}

const (
	reschedFieldWhen = iota
	reschedFieldRecurrence
	reschedFieldInterval
	reschedFieldCount
)

type RescheduleState struct {
	Index         int
	Message       string
	Focus         int
	Input         textinput.Model
	Recurrence    model.Recurrence
	IntervalInput textinput.Model
}

type TasksState struct {
	Index   int
	Message string
	Items   []model.Task
	Cursor  int
	Adding  bool
	Input   textinput.Model
}

type DecisionState struct {
	Queue        []scheduler.PendingReview
	CustomActive bool
	MinutesInput textinput.Model
}

type SettingsState struct {
	Cursor          int
	Times           int
	IntervalSeconds int
}

type SoundsState struct {
	Config        storage.SoundConfig
	FolderInput   textinput.Model
	EditingFolder bool
	Files         []string
	Cursor        int
}

type ReportState struct {
	Body string
}

type PaletteState struct {
	Active bool
	Input  textinput.Model
}

type ReviewDueMsg struct {
	Review scheduler.PendingReview
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		CurrentView: ViewList,
		deps:        deps,
		clock:       time.Now,
		Settings: SettingsState{
			Times:           deps.Settings.Notifications.Times,
			IntervalSeconds: deps.Settings.Notifications.IntervalSeconds,
		},
	}
	m.Add = newAddForm()
	m.Reschedule = RescheduleState{
		Index:         -1,
		Input:         newInput("2006-01-02 15:04 or 15:04", 32),
		IntervalInput: newInput("minutes, for custom repeats", 8),
	}
	m.Tasks = TasksState{Index: -1, Input: newInput("task description", 64)}
	m.Decision = DecisionState{MinutesInput: newInput("minutes", 8)}
	m.Palette = PaletteState{Input: newInput("add buy milk | delete 2 | reschedule 2 18:30 | tasks 1 | show", 64)}

	m.Sounds = SoundsState{
		Config:      storage.LoadSoundConfig(deps.Settings.Paths.SoundConfigFile),
		FolderInput: newInput("/path/to/sounds", 64),
	}
	m.Sounds.FolderInput.SetValue(m.Sounds.Config.SoundFolder)
	m.Sounds.Files = storage.ListWaveFiles(m.Sounds.Config.SoundFolder)

	m.refreshList()
	return m
}

func newAddForm() AddForm {
	f := AddForm{Recurrence: model.RecurrenceNone}
	f.Inputs = make([]textinput.Model, addFieldCount)
	for i := range f.Inputs {
		f.Inputs[i] = textinput.New()
	}
	f.Inputs[addFieldMessage] = newInput("what to be reminded of", 64)
	f.Inputs[addFieldTasks] = newInput("optional tasks, separated by ;", 96)
	f.Inputs[addFieldDate] = newInput("DD/MM/YYYY, empty for today", 12)
	f.Inputs[addFieldHour] = newInput("0-23", 4)
	f.Inputs[addFieldMinute] = newInput("0-59", 4)
	f.Inputs[addFieldInterval] = newInput("minutes, for custom repeats", 8)
	f.Inputs[addFieldMessage].Focus()
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (m *Model) refreshList() {
	m.List.Snapshot = m.deps.Store.List()
	if m.List.Cursor >= len(m.List.Snapshot) {
		m.List.Cursor = len(m.List.Snapshot) - 1
	}
	if m.List.Cursor < 0 {
		m.List.Cursor = 0
	}
}

func (m *Model) setStatus(text string) {
	m.Status = StatusBar{Text: text}
}

func (m *Model) setError(text string) {
	m.Status = StatusBar{Text: text, IsError: true}
}
