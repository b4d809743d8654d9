package selection

import "errors"

// ErrInvalidOptions is returned for controller misconfiguration
var ErrInvalidOptions = errors.New("selection: invalid options")
