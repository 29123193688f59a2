package conditional

import (
	"go.uber.org/zap"
)

// Setting configures a Registry, an Evaluator or a document run.
type Setting func(*settings)

type settings struct {
	logger   *zap.Logger
	registry *Registry
}

// WithLogger routes diagnostics to l. The default discards them.
func WithLogger(l *zap.Logger) Setting {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry selects the condition registry used by Run, Verify and lint.
func WithRegistry(r *Registry) Setting {
	return func(s *settings) {
		s.registry = r
	}
}

func applySettings(list []Setting) settings {
	s := settings{logger: zap.NewNop()}
	for _, fn := range list {
		if fn != nil {
			fn(&s)
		}
	}
	return s
}
