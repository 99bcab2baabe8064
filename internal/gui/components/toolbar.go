package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the four action buttons, the status line and the progress
// indicator. Buttons start disabled and are enabled as the pipeline reaches
// the matching state.
type Toolbar struct {
	container *fyne.Container

	SelectButton   *widget.Button
	GenerateButton *widget.Button
	ReadButton     *widget.Button
	ExportButton   *widget.Button

	statusLabel *widget.Label
	progress    *widget.ProgressBarInfinite

	selectHandler   func()
	generateHandler func()
	readHandler     func()
	exportHandler   func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.setupToolbar()
	return toolbar
}

func (t *Toolbar) setupToolbar() {
	t.SelectButton = widget.NewButton("Select Image (Ctrl+O)", t.onSelect)
	t.SelectButton.Importance = widget.HighImportance

	t.GenerateButton = widget.NewButton("Generate Caption (Ctrl+G)", t.onGenerate)
	t.GenerateButton.Importance = widget.HighImportance
	t.GenerateButton.Disable()

	t.ReadButton = widget.NewButton("Read Aloud (Ctrl+R)", t.onRead)
	t.ReadButton.Disable()

	t.ExportButton = widget.NewButton("Export Alt-Text (Ctrl+S)", t.onExport)
	t.ExportButton.Disable()

	t.statusLabel = widget.NewLabel("Starting up...")
	t.statusLabel.Alignment = fyne.TextAlignCenter

	t.progress = widget.NewProgressBarInfinite()
	t.progress.Stop()
	t.progress.Hide()

	buttons := container.NewHBox(
		t.SelectButton,
		t.GenerateButton,
		t.ReadButton,
		t.ExportButton,
	)

	t.container = container.NewVBox(
		container.NewCenter(buttons),
		t.statusLabel,
		t.progress,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetSelectHandler(handler func())   { t.selectHandler = handler }
func (t *Toolbar) SetGenerateHandler(handler func()) { t.generateHandler = handler }
func (t *Toolbar) SetReadHandler(handler func())     { t.readHandler = handler }
func (t *Toolbar) SetExportHandler(handler func())   { t.exportHandler = handler }

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) Status() string {
	return t.statusLabel.Text
}

// Busy reports whether the progress indicator is showing.
func (t *Toolbar) Busy() bool {
	return t.progress.Visible()
}

// SetBusy shows the progress indicator and locks the generate button while a
// caption request is in flight.
func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.GenerateButton.Disable()
		t.progress.Show()
		t.progress.Start()
		return
	}

	t.progress.Stop()
	t.progress.Hide()
}

func (t *Toolbar) onSelect() {
	if t.selectHandler != nil {
		t.selectHandler()
	}
}

func (t *Toolbar) onGenerate() {
	if t.generateHandler != nil {
		t.generateHandler()
	}
}

func (t *Toolbar) onRead() {
	if t.readHandler != nil {
		t.readHandler()
	}
}

func (t *Toolbar) onExport() {
	if t.exportHandler != nil {
		t.exportHandler()
	}
}
