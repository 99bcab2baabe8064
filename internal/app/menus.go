package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (a *Application) setupMenus() {
	a.window.SetMainMenu(buildMainMenu(a.handlers, a.showAbout, a.showShortcuts, a.quitFromUI))
}

// buildMainMenu assembles the menu bar. quit must run the lifecycle; the
// item is marked IsQuit so Fyne does not append its own Quit entry, which
// would call App.Quit directly and skip the ordered shutdown.
func buildMainMenu(handlers *Handlers, about, shortcuts, quit func()) *fyne.MainMenu {
	quitItem := fyne.NewMenuItem("Quit (Ctrl+Q)", quit)
	quitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image... (Ctrl+O)", func() {
			handlers.HandleImageSelect()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Alt-Text... (Ctrl+S)", func() {
			handlers.HandleExportCaption()
		}),
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle High Contrast (Ctrl+H)", func() {
			handlers.HandleToggleHighContrast()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", about),
		fyne.NewMenuItem("Keyboard Shortcuts", shortcuts),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
}

func (a *Application) showAbout() {
	dialog.ShowInformation(
		"About",
		fmt.Sprintf(
			"%s v%s\n\n"+
				"A desktop tool for generating image captions with text-to-speech support.\n\n"+
				"Captioning is delegated to a pretrained BLIP model.",
			AppName, AppVersion,
		),
		a.window,
	)
}

func (a *Application) showShortcuts() {
	dialog.ShowInformation(
		"Keyboard Shortcuts",
		"Ctrl+O - Select Image\n"+
			"Ctrl+G - Generate Caption\n"+
			"Ctrl+R - Read Aloud\n"+
			"Ctrl+S - Export Alt-Text\n"+
			"Ctrl+H - Toggle High Contrast\n"+
			"Ctrl+Q - Quit",
		a.window,
	)
}
