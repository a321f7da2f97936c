package rt

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("qimpp.rt")

var tracing bool

// SetTrace turns reference lifecycle tracing on or off. Trace lines are
// logged at Debug level, so the logging backend must also allow Debug.
func SetTrace(on bool) {
	tracing = on
}

// Tracing reports whether reference lifecycle tracing is on.
func Tracing() bool {
	return tracing
}

func trace(op string, addr any, count int) {
	if tracing {
		log.Debugf("%s %p count=%d", op, addr, count)
	}
}
