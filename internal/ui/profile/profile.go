// Package profile is the "me" tab: a local-only profile with a phone-number
// registration, editable nickname and account, and a picture.
package profile

import (
	"fmt"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

const (
	DefaultNickname = "Nickname"
	DefaultAccount  = "Account"
)

// ImageExtensions are the picture types the picker accepts.
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// Profile lives in memory only.
type Profile struct {
	Registered bool
	ID         string
	Phone      string
	Nickname   string
	Account    string
	Image      fyne.Resource
}

// NewProfile returns an unregistered profile with placeholder names.
func NewProfile() Profile {
	return Profile{
		Nickname: DefaultNickname,
		Account:  DefaultAccount,
	}
}

// Register marks the profile registered and uses phone as the account.
// The number is not verified.
func (profile *Profile) Register(phone string) {
	profile.Phone = strings.TrimSpace(phone)
	profile.Account = profile.Phone
	profile.ID = uuid.NewString()
	profile.Registered = true
}

// Edit replaces nickname and account. Blank values keep the current ones.
func (profile *Profile) Edit(nickname, account string) {
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		profile.Nickname = nickname
	}
	if account = strings.TrimSpace(account); account != "" {
		profile.Account = account
	}
}

// LoadImage reads a picked picture into a resource named after the file.
func LoadImage(reader fyne.URIReadCloser) (fyne.Resource, error) {
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read profile image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read profile image %s: empty file", reader.URI().Name())
	}
	return fyne.NewStaticResource(reader.URI().Name(), data), nil
}
