package endpoints

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

var _ store.UsersStore = (*MockUsersStore)(nil)

func (m *MockUsersStore) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FindByID(id int64) (*model.User, error) {
	return m.user(m.Called(id))
}

func (m *MockUsersStore) FindByIdentifier(identifier string) (*model.User, error) {
	return m.user(m.Called(identifier))
}

func (m *MockUsersStore) FindByEmail(email string) (*model.User, error) {
	return m.user(m.Called(email))
}

func (m *MockUsersStore) Create(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUsersStore) List() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) UpdateAdmin(id int64, update store.UserAdminUpdate) error {
	return m.Called(id, update).Error(0)
}

func (m *MockUsersStore) UpdatePassword(id int64, hash string) error {
	return m.Called(id, hash).Error(0)
}

func (m *MockUsersStore) UpdateProfile(id int64, update store.ProfileUpdate) (*model.User, error) {
	return m.user(m.Called(id, update))
}

func (m *MockUsersStore) IncrementCredits(id int64) (*model.User, error) {
	return m.user(m.Called(id))
}

func (m *MockUsersStore) Delete(id int64) error {
	return m.Called(id).Error(0)
}

// MockPlansStore implements store.PlansStore for testing using testify/mock
type MockPlansStore struct {
	mock.Mock
}

var _ store.PlansStore = (*MockPlansStore)(nil)

func (m *MockPlansStore) ListByUser(userID int64) ([]model.Plan, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func (m *MockPlansStore) Get(id int64) (*model.Plan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockPlansStore) Save(plan *model.Plan) error {
	return m.Called(plan).Error(0)
}

func (m *MockPlansStore) UpdateContent(id int64, content string) error {
	return m.Called(id, content).Error(0)
}

func (m *MockPlansStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsStore implements store.SettingsStore for testing using testify/mock
type MockSettingsStore struct {
	mock.Mock
}

var _ store.SettingsStore = (*MockSettingsStore)(nil)

func (m *MockSettingsStore) All() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsStore) Get(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSettingsStore) Set(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *MockSettingsStore) SetMany(values map[string]string) error {
	return m.Called(values).Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	return m.Called().Error(0)
}
