package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

const (
	maskedSecret       = "********"
	msgSettingsFailed  = "Erro ao guardar configurações"
	msgLogoFailed      = "Erro ao guardar logotipo"
	msgLogoMissing     = "Logotipo em falta"
	msgInvalidSettings = "Configuração inválida"
)

// settingFields maps the admin form fields to stored setting keys.
var settingFields = map[string]string{
	"escola":      model.SettingDefaultEscola,
	"professor":   model.SettingDefaultProfessor,
	"provincia":   model.SettingDefaultProvincia,
	"municipio":   model.SettingDefaultMunicipio,
	"smtp_host":   model.SettingSMTPHost,
	"smtp_port":   model.SettingSMTPPort,
	"smtp_secure": model.SettingSMTPSecure,
	"smtp_user":   model.SettingSMTPUser,
	"smtp_pass":   model.SettingSMTPPass,
	"admin_email": model.SettingAdminEmail,
}

// LogoRequest is the body of POST /api/admin/upload-logo
type LogoRequest struct {
	Logo string `json:"logo" validate:"required"`
}

// RegisterSettingsEndpoints registers the portal settings endpoints
func RegisterSettingsEndpoints(s *server.Server) {
	log := s.Log.With("component", "settings")

	s.Router.HandleFunc("/api/settings/logo", handleGetLogo(s.SettingsStore)).Methods("GET")
	s.Router.Handle("/api/settings", s.Protected(handleGetSettings(s.SettingsStore))).Methods("GET")
	s.Router.Handle("/api/admin/upload-logo", s.AdminOnly(handleUploadLogo(s.SettingsStore, log))).Methods("POST")
	s.Router.Handle("/api/admin/update-settings", s.AdminOnly(handleUpdateSettings(s.SettingsStore, log))).Methods("POST")
}

func handleGetLogo(settings store.SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logo, ok, err := settings.Get(model.SettingLogo)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if !ok {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{"logo": nil})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"logo": logo})
	}
}

func handleGetSettings(settings store.SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := settings.All()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		for k, v := range all {
			if model.IsSensitiveSetting(k) && v != "" {
				all[k] = maskedSecret
			}
		}
		respondWithJSON(w, http.StatusOK, all)
	}
}

func handleUploadLogo(settings store.SettingsStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogoRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Logo) == "" {
			respondWithError(w, http.StatusBadRequest, msgLogoMissing)
			return
		}

		event := audit.SettingsEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Keys: []string{model.SettingLogo}}
		if err := settings.Set(model.SettingLogo, req.Logo); err != nil {
			log.Error("failed to store logo", "error", err)
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithError(w, http.StatusInternalServerError, msgLogoFailed)
			return
		}
		event.Success = true
		audit.Log(event)
		respondSuccess(w)
	}
}

// settingValue renders a JSON scalar as the stored text form.
func settingValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

func truthy(v string) string {
	switch strings.ToLower(v) {
	case "true", "1", "on", "yes", "sim":
		return "true"
	}
	return "false"
}

// settingsUpdate turns the admin form into setting keys. Fields absent
// from the body are left untouched, as is a masked smtp_pass echoed back.
func settingsUpdate(body map[string]json.RawMessage) (map[string]string, bool) {
	values := make(map[string]string)
	for field, raw := range body {
		key, known := settingFields[field]
		if !known {
			continue
		}
		v, ok := settingValue(raw)
		if !ok {
			return nil, false
		}
		switch key {
		case model.SettingSMTPSecure:
			v = truthy(v)
		case model.SettingSMTPPass:
			if v == maskedSecret {
				continue
			}
		}
		values[key] = v
	}
	return values, true
}

func handleUpdateSettings(settings store.SettingsStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if !decodeJSON(w, r, &body) {
			return
		}
		values, ok := settingsUpdate(body)
		if !ok {
			respondWithError(w, http.StatusBadRequest, msgInvalidSettings)
			return
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		event := audit.SettingsEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Keys: keys}

		if len(values) > 0 {
			if err := settings.SetMany(values); err != nil {
				log.Error("failed to update settings", "keys", keys, "error", err)
				event.ErrorMessage = err.Error()
				audit.Log(event)
				respondWithError(w, http.StatusInternalServerError, msgSettingsFailed)
				return
			}
		}
		event.Success = true
		audit.Log(event)
		respondSuccess(w)
	}
}
