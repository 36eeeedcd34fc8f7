package count

import "github.com/sirupsen/logrus"

// defaultLogger backs the LoggingTracer that Run installs when
// Config.Progress is set; Config has no field for another logger.
var defaultLogger = logrus.StandardLogger()

// Tracer observes the hash-count driver's per-trial state machine:
// Sampling -> Ramping -> BinarySearching -> {Repeating | Aborted}.
type Tracer interface {
	Trace(trial int, state string, detail string)
}

// NoopTracer discards every transition. It is the default when
// Config.Progress is false.
type NoopTracer struct{}

func (NoopTracer) Trace(int, string, string) {}

// LoggingTracer logs each transition at Debug level through log.
type LoggingTracer struct {
	Log logrus.FieldLogger
}

func (t LoggingTracer) Trace(trial int, state string, detail string) {
	t.Log.WithFields(logrus.Fields{
		"trial": trial,
		"state": state,
	}).Debug(detail)
}
