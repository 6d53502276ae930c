package captures

import "errors"

var ErrFlushed = errors.New("output already flushed")
