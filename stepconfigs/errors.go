package stepconfigs

import "errors"

var errNotPositive = errors.New("must be positive")
