package plugins

import "github.com/sirupsen/logrus"

// logReporter is the default Reporter, emitting diagnostics through logrus.
type logReporter struct {
	log *logrus.Logger
}

func (r *logReporter) Warning(format string, args ...any) {
	r.log.Warnf(format, args...)
}

func (r *logReporter) Failure(format string, args ...any) {
	r.log.Errorf(format, args...)
}
