package minimap

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// one warning per second is plenty for a per-frame call site
var preconditionSampler = &zerolog.BurstSampler{Burst: 1, Period: time.Second}

// precondition reports a programming error. Builds tagged minimapdebug panic;
// release builds log and let the caller return a no-op result.
func precondition(op, msg string) {
	if assertionsEnabled {
		panic("minimap: " + op + ": " + msg)
	}
	l := log.Logger.Sample(preconditionSampler)
	l.Warn().Str("op", op).Msg(msg)
}
