package pdf

import (
	"fmt"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/logger"
)

// Report summarises one render run. Warnings hold recovered problems such as
// colour fallbacks; MissingContent lists faces rendered with a blank panel.
type Report struct {
	Arrangement    layout.Arrangement
	Pages          int
	Cards          int
	Warnings       []string
	MissingContent []string
}

func (r *Report) warn(log *logger.Logger, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	log.Warn("%s", msg)
}

func (r *Report) Print(log *logger.Logger) {
	log.Info("Render complete (%s):", r.Arrangement)
	log.Info("- Cards rendered: %d", r.Cards)
	log.Info("- Pages written: %d", r.Pages)
	log.Info("- Warnings: %d", len(r.Warnings))
	if len(r.MissingContent) > 0 {
		log.Info("- Faces without content: %d", len(r.MissingContent))
		for _, face := range r.MissingContent {
			log.Debug("  %s", face)
		}
	}
}
