// Package inspect is the debug HTTP surface: classify arbitrary text against
// candidate intents and browse the intent registry without going through a
// chat backend.
package inspect

import (
	"github.com/gin-gonic/gin"

	"parley/internal/classify"
	"parley/internal/intent"
	pkgLog "parley/pkg/log"
)

// Handler is the public interface for the inspect HTTP delivery layer.
type Handler interface {
	Classify(c *gin.Context)
	ListIntents(c *gin.Context)
}

type handler struct {
	l          pkgLog.Logger
	classifier classify.Classifier
	registry   *intent.Registry
}

// New creates the inspect handler over the live classifier and registry.
func New(l pkgLog.Logger, classifier classify.Classifier, registry *intent.Registry) Handler {
	return &handler{
		l:          l,
		classifier: classifier,
		registry:   registry,
	}
}
