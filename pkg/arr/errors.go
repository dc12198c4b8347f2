package arr

import "errors"

// ErrInvalidArgument is returned when a request cannot be satisfied by the
// input, such as asking Random for more items than exist.
var ErrInvalidArgument = errors.New("arr: invalid argument")
