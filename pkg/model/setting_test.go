package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/db/dbtest"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

func TestSetting_SealedAtRest(t *testing.T) {
	db := dbtest.New(t, dbtest.Cipher(t))

	require.NoError(t, db.Create(&model.Setting{Key: model.SettingSMTPPass, Value: "segredo"}).Error)
	require.NoError(t, db.Create(&model.Setting{Key: model.SettingSMTPHost, Value: "smtp.gmail.com"}).Error)

	var raw []struct {
		Key   string
		Value string
	}
	require.NoError(t, db.Raw(`SELECT key, value FROM settings ORDER BY key`).Scan(&raw).Error)
	require.Len(t, raw, 2)
	assert.Equal(t, "smtp.gmail.com", raw[0].Value)
	assert.NotEqual(t, "segredo", raw[1].Value)
	assert.Contains(t, raw[1].Value, "enc:")

	var got model.Setting
	require.NoError(t, db.First(&got, "key = ?", model.SettingSMTPPass).Error)
	assert.Equal(t, "segredo", got.Value)
}

func TestSetting_NoCipherStoresPlain(t *testing.T) {
	db := dbtest.New(t, nil)

	require.NoError(t, db.Create(&model.Setting{Key: model.SettingSMTPPass, Value: "segredo"}).Error)

	var got model.Setting
	require.NoError(t, db.First(&got, "key = ?", model.SettingSMTPPass).Error)
	assert.Equal(t, "segredo", got.Value)
}

func TestIsSensitiveSetting(t *testing.T) {
	assert.True(t, model.IsSensitiveSetting("smtp_pass"))
	assert.False(t, model.IsSensitiveSetting("smtp_user"))
}
