package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation")      // 400
	ErrNotFound   = errors.New("not found")       // 404
	ErrConflict   = errors.New("conflict")        // 409
	ErrGateway    = errors.New("gateway failure") // 502
)

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
