package store

// SettingsStore abstracts key/value settings storage
type SettingsStore interface {
	All() (map[string]string, error)

	// Get returns ok=false when the key is not set.
	Get(key string) (value string, ok bool, err error)

	Set(key, value string) error

	// SetMany upserts every pair in a single transaction.
	SetMany(values map[string]string) error
}
