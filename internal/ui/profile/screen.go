package profile

import (
	"log/slog"

	"timeapp/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Deps are the collaborators a profile screen needs.
type Deps struct {
	Window        fyne.Window
	OnPreferences func()
	Logger        *slog.Logger
}

// Screen is the profile tab.
type Screen struct {
	window        fyne.Window
	onPreferences func()
	logger        *slog.Logger

	profile Profile
	phone   *widget.Entry
	body    *fyne.Container
	content fyne.CanvasObject
}

// New creates the profile screen showing the registration form.
func New(deps Deps) *Screen {
	screen := &Screen{
		window:        deps.Window,
		onPreferences: deps.OnPreferences,
		logger:        logging.OrDefault(deps.Logger).With("screen", "profile"),
		profile:       NewProfile(),
	}
	screen.phone = widget.NewEntry()
	screen.phone.SetPlaceHolder("Phone number")
	screen.body = container.NewVBox()
	screen.content = container.NewVBox(layout.NewSpacer(), screen.body, layout.NewSpacer())
	screen.render()
	return screen
}

// Content returns the screen layout.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.content
}

// Profile returns a copy of the current profile.
func (screen *Screen) Profile() Profile {
	return screen.profile
}

// Mount is a no-op; the profile keeps its state while the app runs.
func (screen *Screen) Mount() {}

// Unmount is a no-op.
func (screen *Screen) Unmount() {}

// Close is a no-op.
func (screen *Screen) Close() {}

func (screen *Screen) render() {
	if screen.profile.Registered {
		screen.body.Objects = screen.registeredView()
	} else {
		screen.body.Objects = screen.registerView()
	}
	screen.body.Refresh()
}

func (screen *Screen) registerView() []fyne.CanvasObject {
	register := widget.NewButton("Register with phone number", screen.handleRegister)
	register.Importance = widget.SuccessImportance
	return []fyne.CanvasObject{screen.phone, register}
}

func (screen *Screen) registeredView() []fyne.CanvasObject {
	icon := screen.profile.Image
	if icon == nil {
		icon = theme.AccountIcon()
	}
	avatar := widget.NewButtonWithIcon("", icon, screen.showImagePicker)
	avatar.Importance = widget.LowImportance

	edit := widget.NewButtonWithIcon("Edit profile", theme.DocumentCreateIcon(), screen.showEditForm)
	edit.Importance = widget.HighImportance
	prefs := widget.NewButtonWithIcon("Preferences", theme.SettingsIcon(), screen.handlePreferences)

	return []fyne.CanvasObject{
		container.NewCenter(container.NewGridWrap(fyne.NewSize(100, 100), avatar)),
		widget.NewLabelWithStyle("Nickname: "+screen.profile.Nickname, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Account: " + screen.profile.Account),
		edit,
		prefs,
	}
}

func (screen *Screen) handleRegister() {
	screen.profile.Register(screen.phone.Text)
	screen.logger.Info("profile registered", "id", screen.profile.ID)
	screen.render()
}

func (screen *Screen) showEditForm() {
	nickname := widget.NewEntry()
	nickname.SetText(screen.profile.Nickname)
	account := widget.NewEntry()
	account.SetText(screen.profile.Account)

	items := []*widget.FormItem{
		widget.NewFormItem("Nickname", nickname),
		widget.NewFormItem("Account", account),
	}
	dialog.ShowForm("Edit profile", "Save", "Cancel", items, func(save bool) {
		if save {
			screen.applyEdit(nickname.Text, account.Text)
		}
	}, screen.window)
}

func (screen *Screen) applyEdit(nickname, account string) {
	screen.profile.Edit(nickname, account)
	screen.render()
}

func (screen *Screen) showImagePicker() {
	picker := dialog.NewFileOpen(screen.handleImage, screen.window)
	picker.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
	picker.Show()
}

func (screen *Screen) handleImage(reader fyne.URIReadCloser, err error) {
	if err != nil {
		screen.logger.Warn("image picker failed", "error", err)
		return
	}
	if reader == nil {
		return
	}
	image, err := LoadImage(reader)
	if err != nil {
		screen.logger.Warn("profile image rejected", "error", err)
		if screen.window != nil {
			dialog.ShowError(err, screen.window)
		}
		return
	}
	screen.profile.Image = image
	screen.render()
}

func (screen *Screen) handlePreferences() {
	if screen.onPreferences != nil {
		screen.onPreferences()
	}
}
