package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Time)
}

func TestHealth_DatabaseDown(t *testing.T) {
	mdb := newMockDB(t)
	mdb.expectPing(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	handleHealth(gormstore.NewHealthStore(mdb.GormDB))(rec, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body HealthResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "error", body.Status)
	assert.NoError(t, mdb.Mock.ExpectationsWereMet())
}

func TestHealth_MockStore(t *testing.T) {
	hs := &MockHealthStore{}
	hs.On("CheckConnectivity").Return(nil)

	rec := httptest.NewRecorder()
	handleHealth(hs)(rec, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	hs.AssertExpectations(t)
}
