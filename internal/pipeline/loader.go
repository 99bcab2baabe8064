package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	_ "golang.org/x/image/bmp"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"

	"image-captioner/internal/logger"
	"image-captioner/internal/models"
)

// Thumbnail bounds match the display area of the image widget.
const (
	ThumbnailMaxWidth  = 600
	ThumbnailMaxHeight = 400
)

type imageLoader struct {
	logger logger.Logger
}

// NewLoader builds the image loader used by the coordinator.
func NewLoader(log logger.Logger) ImageLoader {
	return &imageLoader{logger: log}
}

func (l *imageLoader) LoadFromReader(reader fyne.URIReadCloser) (*models.LoadedImage, error) {
	path := reader.URI().Path()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return l.LoadFromBytes(data, path)
}

// LoadFromPath loads an image directly from a filesystem path, used by the
// drag-and-drop handler.
func (l *imageLoader) LoadFromPath(path string) (*models.LoadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return l.LoadFromBytes(data, path)
}

func (l *imageLoader) LoadFromBytes(data []byte, path string) (*models.LoadedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	loaded := &models.LoadedImage{
		Path:      path,
		Data:      data,
		Image:     img,
		Thumbnail: l.thumbnail(data, img),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    format,
		SizeBytes: int64(len(data)),
		LoadTime:  time.Now(),
	}

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"path":       path,
		"width":      loaded.Width,
		"height":     loaded.Height,
		"format":     format,
		"size_bytes": loaded.SizeBytes,
	})

	return loaded, nil
}

// thumbnail downscales via OpenCV area interpolation, which keeps small
// previews crisp. Formats OpenCV cannot decode fall back to the full decode;
// the display widget contains oversized images anyway.
func (l *imageLoader) thumbnail(data []byte, decoded image.Image) image.Image {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return decoded
	}
	defer mat.Close()

	if mat.Empty() {
		return decoded
	}

	width, height := fitWithin(mat.Cols(), mat.Rows(), ThumbnailMaxWidth, ThumbnailMaxHeight)
	if width == mat.Cols() && height == mat.Rows() {
		return decoded
	}

	scaled := gocv.NewMat()
	defer scaled.Close()

	gocv.Resize(mat, &scaled, image.Pt(width, height), 0, 0, gocv.InterpolationArea)

	thumb, err := scaled.ToImage()
	if err != nil {
		l.logger.Warning("ImageLoader", "thumbnail conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return decoded
	}

	return thumb
}

// fitWithin scales (w, h) down to fit the bounding box while preserving the
// aspect ratio. Images already inside the box keep their size.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)

	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	scaledW := int(float64(w) * scale)
	scaledH := int(float64(h) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	return scaledW, scaledH
}
