package logger

import "go.uber.org/zap"

// Log defaults to a no-op logger so library code and tests can log without
// initialization. Init swaps in the production logger.
var Log = zap.NewNop()

func Init() {
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
