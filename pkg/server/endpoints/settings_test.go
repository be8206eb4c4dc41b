package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

func TestLogo(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/settings/logo", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logo":null}`, rec.Body.String())

	rec = env.do(t, "POST", "/api/admin/upload-logo", LogoRequest{Logo: "  "}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgLogoMissing, errorOf(t, rec))

	rec = env.do(t, "POST", "/api/admin/upload-logo", LogoRequest{Logo: "data:image/png;base64,iVBORw0KGgo="}, env.teacher)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, "POST", "/api/admin/upload-logo", LogoRequest{Logo: "data:image/png;base64,iVBORw0KGgo="}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/settings/logo", nil, nil)
	assert.JSONEq(t, `{"logo":"data:image/png;base64,iVBORw0KGgo="}`, rec.Body.String())
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"escola":      "Escola Primária nº 12",
		"provincia":   "Benguela",
		"smtp_host":   "smtp.gmail.com",
		"smtp_port":   587,
		"smtp_secure": true,
		"smtp_pass":   "segredo",
		"ignored":     "x",
	}
	rec := env.do(t, "POST", "/api/admin/update-settings", body, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := env.srv.SettingsStore.All()
	require.NoError(t, err)
	assert.Equal(t, "Escola Primária nº 12", stored[model.SettingDefaultEscola])
	assert.Equal(t, "Benguela", stored[model.SettingDefaultProvincia])
	assert.Equal(t, "587", stored[model.SettingSMTPPort])
	assert.Equal(t, "true", stored[model.SettingSMTPSecure])
	assert.Equal(t, "segredo", stored[model.SettingSMTPPass])
	assert.NotContains(t, stored, "ignored")

	rec = env.do(t, "GET", "/api/settings", nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var visible map[string]string
	decodeBody(t, rec, &visible)
	assert.Equal(t, maskedSecret, visible[model.SettingSMTPPass])
	assert.Equal(t, "smtp.gmail.com", visible[model.SettingSMTPHost])

	t.Run("masked password is kept", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/update-settings", map[string]interface{}{"smtp_pass": maskedSecret, "smtp_secure": "off"}, env.admin)
		require.Equal(t, http.StatusOK, rec.Code)
		stored, err := env.srv.SettingsStore.All()
		require.NoError(t, err)
		assert.Equal(t, "segredo", stored[model.SettingSMTPPass])
		assert.Equal(t, "false", stored[model.SettingSMTPSecure])
	})

	t.Run("non scalar value", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/update-settings", map[string]interface{}{"smtp_port": []int{1}}, env.admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgInvalidSettings, errorOf(t, rec))
	})
}

func TestSettingsUpdate(t *testing.T) {
	values, ok := settingsUpdate(map[string]json.RawMessage{
		"municipio":   json.RawMessage(`null`),
		"smtp_secure": json.RawMessage(`"Sim"`),
		"admin_email": json.RawMessage(`" admin@ppa.ao "`),
	})
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		model.SettingDefaultMunicipio: "",
		model.SettingSMTPSecure:       "true",
		model.SettingAdminEmail:       "admin@ppa.ao",
	}, values)

	_, ok = settingsUpdate(map[string]json.RawMessage{"escola": json.RawMessage(`{"a":1}`)})
	assert.False(t, ok)
}

func TestUpdateSettings_StoreFailure(t *testing.T) {
	settings := &MockSettingsStore{}
	settings.On("SetMany", map[string]string{model.SettingSMTPHost: "smtp.ppa.ao"}).Return(errors.New("locked"))

	req := asCaller(jsonRequest(t, "POST", "/api/admin/update-settings", map[string]string{"smtp_host": "smtp.ppa.ao"}), 1, true)
	rec := httptest.NewRecorder()
	handleUpdateSettings(settings, logger.Nop())(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgSettingsFailed, errorOf(t, rec))
	settings.AssertExpectations(t)
}
