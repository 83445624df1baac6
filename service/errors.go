package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyFollowing   = errors.New("already following that user")
	ErrNotFollowing       = errors.New("not yet following that user")
)

// isDuplicateKey 识别唯一键冲突；gorm 的 TranslateError 覆盖大部分驱动，
// MySQL errno 1062 作为兜底。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
