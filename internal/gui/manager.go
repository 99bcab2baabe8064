// Package gui assembles the window content and mediates every UI mutation
// through the Fyne event loop.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"image-captioner/internal/gui/components"
	"image-captioner/internal/logger"
)

type Manager struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	isShutdown bool

	imageDisplay *components.ImageDisplay
	captionPanel *components.CaptionPanel
	toolbar      *components.Toolbar

	highContrast bool
}

func NewManager(fyneApp fyne.App, window fyne.Window, log logger.Logger) *Manager {
	manager := &Manager{
		fyneApp:      fyneApp,
		window:       window,
		logger:       log,
		imageDisplay: components.NewImageDisplay(),
		captionPanel: components.NewCaptionPanel(),
		toolbar:      components.NewToolbar(),
	}

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"image_width":  components.ImageAreaWidth,
		"image_height": components.ImageAreaHeight,
	})

	return manager
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return container.NewBorder(
		nil,
		container.NewVBox(
			m.captionPanel.GetContainer(),
			m.toolbar.GetContainer(),
		),
		nil, nil,
		m.imageDisplay.GetContainer(),
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetSelectHandler(handler func())   { m.toolbar.SetSelectHandler(handler) }
func (m *Manager) SetGenerateHandler(handler func()) { m.toolbar.SetGenerateHandler(handler) }
func (m *Manager) SetReadHandler(handler func())     { m.toolbar.SetReadHandler(handler) }
func (m *Manager) SetExportHandler(handler func())   { m.toolbar.SetExportHandler(handler) }

// SetImage shows the thumbnail and clears state left over from the previous
// image.
func (m *Manager) SetImage(img image.Image) {
	fyne.Do(func() {
		m.imageDisplay.SetImage(img)
		m.captionPanel.Clear()
		m.toolbar.ReadButton.Disable()
		m.toolbar.ExportButton.Disable()
	})
}

// SetCaption displays the generated caption and unlocks the actions that
// need one.
func (m *Manager) SetCaption(caption string) {
	fyne.Do(func() {
		m.captionPanel.SetCaption(caption)
		m.toolbar.ReadButton.Enable()
		m.toolbar.ExportButton.Enable()
	})
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.toolbar.SetStatus(status)
	})

	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": status,
	})
}

func (m *Manager) Status() string {
	return m.toolbar.Status()
}

func (m *Manager) Busy() bool {
	return m.toolbar.Busy()
}

// SetBusy toggles the progress indicator around a caption request.
func (m *Manager) SetBusy(busy bool) {
	fyne.Do(func() {
		m.toolbar.SetBusy(busy)
	})
}

// SetGenerateEnabled unlocks caption generation once an image is loaded and
// the engine is ready.
func (m *Manager) SetGenerateEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			m.toolbar.GenerateButton.Enable()
		} else {
			m.toolbar.GenerateButton.Disable()
		}
	})
}

// ToggleHighContrast switches between the default and the high-contrast
// theme and reports the new state.
func (m *Manager) ToggleHighContrast() bool {
	m.highContrast = !m.highContrast

	fyne.Do(func() {
		if m.highContrast {
			m.fyneApp.Settings().SetTheme(NewHighContrastTheme())
		} else {
			m.fyneApp.Settings().SetTheme(theme.DefaultTheme())
		}
	})

	m.logger.Info("GUIManager", "high contrast toggled", map[string]interface{}{
		"enabled": m.highContrast,
	})

	return m.highContrast
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, m.window)
	})
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
