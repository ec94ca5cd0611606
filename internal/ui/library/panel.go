package library

import (
	"errors"

	"eyeflow/internal/core/library"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var articleDialogSize = fyne.NewSize(560, 460)

// Panel shows the article catalog as category tabs with "Read more" buttons.
type Panel struct {
	library *library.Library
	parent  fyne.Window
	tabs    *container.AppTabs
	buttons map[string]*widget.Button
	dialog  dialog.Dialog
}

// NewPanel builds the catalog view. Articles open as dialogs over parent.
func NewPanel(lib *library.Library, parent fyne.Window) *Panel {
	panel := &Panel{
		library: lib,
		parent:  parent,
		buttons: make(map[string]*widget.Button),
	}

	var items []*container.TabItem
	for _, category := range lib.Categories() {
		cards := container.NewGridWithColumns(3)
		for _, entry := range lib.InCategory(category) {
			cards.Add(panel.newCard(entry))
		}
		items = append(items, container.NewTabItem(category.Label(), cards))
	}
	panel.tabs = container.NewAppTabs(items...)
	panel.tabs.SetTabLocation(container.TabLocationTop)

	return panel
}

// Content returns the panel's root object.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.tabs
}

// Open shows the article with the given identifier. Unknown identifiers
// show a "not found" message instead.
func (panel *Panel) Open(id string) error {
	article, err := panel.library.Lookup(id)
	if err != nil {
		if panel.dialog != nil {
			panel.dialog.Hide()
		}
		message := "This article could not be loaded."
		if errors.Is(err, library.ErrArticleNotFound) {
			message = "This article is not available."
		}
		panel.dialog = dialog.NewInformation("Article not found", message, panel.parent)
		panel.dialog.Show()
		return err
	}

	body := widget.NewRichTextFromMarkdown(article.Body)
	body.Wrapping = fyne.TextWrapWord

	if panel.dialog != nil {
		panel.dialog.Hide()
	}
	articleDialog := dialog.NewCustom(article.Title, "Close", container.NewVScroll(body), panel.parent)
	articleDialog.Resize(articleDialogSize)
	panel.dialog = articleDialog
	panel.dialog.Show()
	return nil
}

func (panel *Panel) newCard(entry library.Entry) fyne.CanvasObject {
	id := entry.ID
	readMore := widget.NewButton("Read more", func() {
		_ = panel.Open(id)
	})
	panel.buttons[id] = readMore

	summary := widget.NewLabel(entry.Summary)
	summary.Wrapping = fyne.TextWrapWord

	return widget.NewCard(entry.Title, "", container.NewBorder(nil, readMore, nil, nil, summary))
}
