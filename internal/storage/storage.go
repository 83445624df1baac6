package storage

import (
	"errors"
	"log"
	"net/url"
	"strings"
)

var ErrBadObjectURL = errors.New("object URL has no bucket or key")

// Deleter removes a stored binary object. The real implementation lives with the
// upload pipeline; this service only ever deletes replaced profile pictures, and
// failures must not block the account update.
type Deleter interface {
	Delete(bucket, key string) error
}

// ParseObjectURL splits a stored picture location of the form
// https://<bucket>.<host>/<key> into its bucket and key parts.
func ParseObjectURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	host := strings.SplitN(u.Host, ".", 2)
	key = strings.TrimPrefix(u.Path, "/")
	if i := strings.IndexByte(key, '/'); i >= 0 {
		key = key[:i]
	}
	if host[0] == "" || key == "" {
		return "", "", ErrBadObjectURL
	}
	return host[0], key, nil
}

// LogDeleter is the default wiring when no object store is configured: it only
// records what would have been deleted.
type LogDeleter struct{}

func (LogDeleter) Delete(bucket, key string) error {
	log.Printf("object delete skipped (no store configured): bucket=%s key=%s", bucket, key)
	return nil
}
