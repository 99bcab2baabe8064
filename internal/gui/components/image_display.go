package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 600
	ImageAreaHeight = 400
)

// ImageDisplay shows the thumbnail of the currently loaded image, or a
// placeholder prompt before the first selection.
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label
}

func NewImageDisplay() *ImageDisplay {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	img.Hide()

	placeholder := widget.NewLabel("No image selected\n\nDrop an image here or use Select Image (Ctrl+O)")
	placeholder.Alignment = fyne.TextAlignCenter

	return &ImageDisplay{
		container:   container.NewStack(img, container.NewCenter(placeholder)),
		image:       img,
		placeholder: placeholder,
	}
}

func (d *ImageDisplay) GetContainer() *fyne.Container {
	return d.container
}

// SetImage replaces the displayed thumbnail.
func (d *ImageDisplay) SetImage(img image.Image) {
	if img == nil {
		return
	}

	d.image.Image = img
	d.placeholder.Hide()
	d.image.Show()
	d.image.Refresh()
}

// Clear returns the display to the placeholder state.
func (d *ImageDisplay) Clear() {
	d.image.Image = nil
	d.image.Hide()
	d.placeholder.Show()
	d.container.Refresh()
}
