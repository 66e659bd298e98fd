package theme

import (
	"fmt"

	"go.uber.org/zap"
)

// Applier projects a Mapping onto a StyleSink.
type Applier struct {
	sink   StyleSink
	logger *zap.Logger
}

// NewApplier creates an Applier writing to sink.
func NewApplier(sink StyleSink, logger *zap.Logger) *Applier {
	return &Applier{sink: sink, logger: logger}
}

// Apply sets one CSS variable per known token present in m and returns the
// variables it wrote. Unknown keys are skipped. Sink failures are logged and
// never reach the caller: a broken style target must not block persistence.
func (a *Applier) Apply(m Mapping) (applied map[string]string) {
	applied = make(map[string]string, len(tokenTable))
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("theme apply panicked", zap.String("panic", fmt.Sprint(r)))
		}
	}()

	for _, t := range tokenTable {
		v, ok := m[string(t.token)]
		if !ok {
			continue
		}
		if err := a.sink.SetVariable(t.variable, v); err != nil {
			a.logger.Warn("failed to set theme variable",
				zap.String("variable", t.variable),
				zap.Error(err),
			)
			continue
		}
		applied[t.variable] = v
	}
	return applied
}
