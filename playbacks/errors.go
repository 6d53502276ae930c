package playbacks

import "errors"

var ErrUnknownCommand = errors.New("unknown command")
