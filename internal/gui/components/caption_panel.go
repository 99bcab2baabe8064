package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CaptionPanel displays the generated caption in a read-only multi-line
// text area.
type CaptionPanel struct {
	container *fyne.Container
	text      *widget.Entry
}

func NewCaptionPanel() *CaptionPanel {
	text := widget.NewMultiLineEntry()
	text.Wrapping = fyne.TextWrapWord
	text.SetPlaceHolder("The generated caption will appear here.")
	text.Disable()

	return &CaptionPanel{
		container: container.NewBorder(
			widget.NewRichTextFromMarkdown("**Generated Caption**"),
			nil, nil, nil,
			text,
		),
		text: text,
	}
}

func (p *CaptionPanel) GetContainer() *fyne.Container {
	return p.container
}

func (p *CaptionPanel) SetCaption(caption string) {
	p.text.SetText(caption)
}

func (p *CaptionPanel) Clear() {
	p.text.SetText("")
}

// Caption returns the currently displayed text.
func (p *CaptionPanel) Caption() string {
	return p.text.Text
}
