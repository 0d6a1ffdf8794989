package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist  = errors.New("user already exist")
	ErrEmailAlreadyExist = errors.New("email already exist")
	ErrRefreshRevoked    = errors.New("refresh token expired or revoked")
)

type GormRepo struct {
	DB *gorm.DB
}
