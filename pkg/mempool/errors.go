package mempool

import "errors"

var ErrCountOutOfRange = errors.New("count cannot be greater than one")
var ErrInvalidPointer = errors.New("invalid pointer")
var ErrClosed = errors.New("pool is closed")
