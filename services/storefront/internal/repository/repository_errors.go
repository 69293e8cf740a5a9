package repository

import "errors"

var ErrOrderNotFound = errors.New("online order not found")
