package store

import (
	"errors"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

// ErrNewsNotFound is returned when a news item doesn't exist
var ErrNewsNotFound = errors.New("news not found")

// NewsStore abstracts news storage
type NewsStore interface {
	// ListActive returns items not expired at now, newest first.
	ListActive(now time.Time) ([]model.News, error)

	Create(news *model.News) error
	Delete(id int64) error
	ExistsByTitle(title string) (bool, error)

	// DeleteExpired removes items whose expiry is at or before now.
	DeleteExpired(now time.Time) (int64, error)

	Count() (int64, error)
}
