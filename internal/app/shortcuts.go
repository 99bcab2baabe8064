package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// setupShortcuts binds the accessibility shortcuts. Each maps to the same
// handler as the matching button or menu entry.
func (a *Application) setupShortcuts() {
	canvas := a.window.Canvas()

	bindings := []struct {
		key    fyne.KeyName
		action func()
	}{
		{fyne.KeyO, a.handlers.HandleImageSelect},
		{fyne.KeyG, a.handlers.HandleGenerateCaption},
		{fyne.KeyR, a.handlers.HandleReadAloud},
		{fyne.KeyS, a.handlers.HandleExportCaption},
		{fyne.KeyH, a.handlers.HandleToggleHighContrast},
		{fyne.KeyQ, a.quitFromUI},
	}

	for _, binding := range bindings {
		action := binding.action
		canvas.AddShortcut(&desktop.CustomShortcut{
			KeyName:  binding.key,
			Modifier: fyne.KeyModifierControl,
		}, func(fyne.Shortcut) {
			action()
		})
	}
}
