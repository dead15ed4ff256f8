package host

import "errors"

var errCommandFault = errors.New("command aborted by fault")
