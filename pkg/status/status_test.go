package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatusString(t *testing.T) {
	assert.Equal(t, "Pendente", UserPendente.String())
	assert.Equal(t, "Ativo", UserAtivo.String())
	assert.Equal(t, "Inativo", UserInativo.String())
	assert.Equal(t, "Bloqueado", UserBloqueado.String())
	assert.Equal(t, "UserStatus(9)", UserStatus(9).String())
}

func TestParse(t *testing.T) {
	s, err := UserStatusString("ativo")
	require.NoError(t, err)
	assert.Equal(t, UserAtivo, s)

	c, err := CommunityStatusString("Rejeitado")
	require.NoError(t, err)
	assert.Equal(t, CommunityRejeitado, c)

	_, err = CommunityStatusString("Apagado")
	assert.Error(t, err)

	assert.Equal(t, []string{"Pendente", "Resolvido"}, FeedbackStatusStrings())
}

func TestJSON(t *testing.T) {
	payload := struct {
		Status CommunityStatus `json:"status"`
	}{CommunityAprovado}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Aprovado"}`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`{"status":"Pendente"}`), &payload))
	assert.Equal(t, CommunityPendente, payload.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":3}`), &payload))
}

func TestSQL(t *testing.T) {
	v, err := FeedbackResolvido.Value()
	require.NoError(t, err)
	assert.Equal(t, "Resolvido", v)

	var u UserStatus
	require.NoError(t, u.Scan([]byte("Bloqueado")))
	assert.Equal(t, UserBloqueado, u)
	require.NoError(t, u.Scan(nil))
	assert.Equal(t, UserBloqueado, u)
	assert.Error(t, u.Scan(42))
}

func TestHelpers(t *testing.T) {
	assert.True(t, UserAtivo.CanLogin())
	assert.False(t, UserPendente.CanLogin())
	assert.False(t, UserBloqueado.CanLogin())

	assert.True(t, CommunityAprovado.IsModeration())
	assert.True(t, CommunityRejeitado.IsModeration())
	assert.False(t, CommunityPendente.IsModeration())
}
