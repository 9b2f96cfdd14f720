package profile

import (
	"errors"
	"io"
	"strings"
	"testing"

	"timeapp/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedFile struct {
	io.Reader
	uri    fyne.URI
	closed bool
}

func (file *pickedFile) URI() fyne.URI { return file.uri }
func (file *pickedFile) Close() error  { file.closed = true; return nil }

func picked(name, content string) *pickedFile {
	return &pickedFile{Reader: strings.NewReader(content), uri: storage.NewFileURI("/tmp/" + name)}
}

func TestRegisterUsesPhoneAsAccount(t *testing.T) {
	profile := NewProfile()
	assert.False(t, profile.Registered)
	assert.Equal(t, DefaultNickname, profile.Nickname)

	profile.Register(" 13800000000 ")
	assert.True(t, profile.Registered)
	assert.Equal(t, "13800000000", profile.Phone)
	assert.Equal(t, "13800000000", profile.Account)
	_, err := uuid.Parse(profile.ID)
	assert.NoError(t, err)
}

func TestEditKeepsBlankFields(t *testing.T) {
	profile := NewProfile()
	profile.Edit("Ada", "  ")
	assert.Equal(t, "Ada", profile.Nickname)
	assert.Equal(t, DefaultAccount, profile.Account)
}

func TestLoadImage(t *testing.T) {
	file := picked("me.png", "pixels")
	resource, err := LoadImage(file)
	require.NoError(t, err)
	assert.Equal(t, "me.png", resource.Name())
	assert.Equal(t, []byte("pixels"), resource.Content())
	assert.True(t, file.closed)

	_, err = LoadImage(picked("empty.png", ""))
	assert.Error(t, err)
}

func TestScreenRegistrationFlow(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	opened := 0
	screen := New(Deps{
		Window:        app.NewWindow("profile"),
		OnPreferences: func() { opened++ },
		Logger:        logging.Nop(),
	})

	require.Len(t, screen.body.Objects, 2)
	screen.phone.SetText("555-0100")
	register, ok := screen.body.Objects[1].(*widget.Button)
	require.True(t, ok)
	test.Tap(register)

	assert.True(t, screen.Profile().Registered)
	require.Len(t, screen.body.Objects, 5)
	account, ok := screen.body.Objects[2].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "Account: 555-0100", account.Text)

	screen.applyEdit("Grace", "grace")
	nickname := screen.body.Objects[1].(*widget.Label)
	assert.Equal(t, "Nickname: Grace", nickname.Text)

	prefs := screen.body.Objects[4].(*widget.Button)
	test.Tap(prefs)
	assert.Equal(t, 1, opened)
}

func TestScreenImagePicking(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	screen := New(Deps{Window: app.NewWindow("profile")})
	screen.handleRegister()

	screen.handleImage(nil, nil)
	assert.Nil(t, screen.Profile().Image)

	screen.handleImage(nil, errors.New("denied"))
	assert.Nil(t, screen.Profile().Image)

	screen.handleImage(picked("avatar.jpg", "jpeg"), nil)
	require.NotNil(t, screen.Profile().Image)
	assert.Equal(t, "avatar.jpg", screen.Profile().Image.Name())
}
