package model

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
)

// Setting keys written by the admin settings form.
const (
	SettingLogo             = "logo"
	SettingDefaultEscola    = "default_escola"
	SettingDefaultProfessor = "default_professor"
	SettingDefaultProvincia = "default_provincia"
	SettingDefaultMunicipio = "default_municipio"
	SettingSMTPHost         = "smtp_host"
	SettingSMTPPort         = "smtp_port"
	SettingSMTPSecure       = "smtp_secure"
	SettingSMTPUser         = "smtp_user"
	SettingSMTPPass         = "smtp_pass"
	SettingAdminEmail       = "admin_email"
)

// sealedSettings are encrypted at rest when the connection carries a cipher.
var sealedSettings = map[string]bool{
	SettingSMTPPass: true,
}

// IsSensitiveSetting reports whether a key must never be returned to clients.
func IsSensitiveSetting(key string) bool {
	return sealedSettings[key]
}

type Setting struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

func (s *Setting) BeforeSave(tx *gorm.DB) error {
	if !sealedSettings[s.Key] || crypt.IsSealed(s.Value) {
		return nil
	}
	c, ok := crypt.FromContext(tx.Statement.Context)
	if !ok {
		return nil
	}

	sealed, err := crypt.Seal(c, s.Key, s.Value)
	if err != nil {
		return fmt.Errorf("setting encryption failed for key=%q", s.Key)
	}
	s.Value = sealed
	return nil
}

func (s *Setting) AfterFind(tx *gorm.DB) error {
	if !crypt.IsSealed(s.Value) {
		return nil
	}
	c, ok := crypt.FromContext(tx.Statement.Context)
	if !ok {
		return fmt.Errorf("setting %q is encrypted but no data key is configured", s.Key)
	}

	plain, err := crypt.Open(c, s.Key, s.Value)
	if err != nil {
		return fmt.Errorf("setting decryption failed for key=%q", s.Key)
	}
	s.Value = plain
	return nil
}
