package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	// Usable before Init for early startup failures.
	l, _ := zap.NewProduction()
	log = l.Sugar()
}

// Init replaces the default logger according to the environment.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return
	}
	log = l.Sugar()
}

// keyvals tolerates a trailing bare error, so both
// logger.Error("msg", err) and logger.Error("msg", "error", err) work.
func keyvals(kv []interface{}) []interface{} {
	if len(kv)%2 == 1 {
		if err, ok := kv[len(kv)-1].(error); ok {
			kv = append(kv[:len(kv)-1:len(kv)-1], "error", err)
		}
	}
	return kv
}

func Debug(msg string, kv ...interface{}) {
	log.Debugw(msg, keyvals(kv)...)
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, keyvals(kv)...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, keyvals(kv)...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, keyvals(kv)...)
}

func Fatal(msg string, kv ...interface{}) {
	log.Fatalw(msg, keyvals(kv)...)
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	_ = log.Sync()
}
