package huffcomp

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffcomp")
