package assert

import (
	"fmt"

	"github.com/bloeys/glsltri/logging"
)

// T panics with the formatted message when check is false. The message is
// logged first so it reaches the log sink even if the panic is recovered.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	logging.ErrLog.Errorw("assert failed", "msg", msg)
	panic("Assert failed: " + msg)
}
