package orders

import "errors"

var (
	ErrNotFound  = errors.New("order not found")
	ErrDuplicate = errors.New("order id already archived")
)
