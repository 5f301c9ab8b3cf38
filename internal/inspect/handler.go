package inspect

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"parley/internal/intent"
	pkgResponse "parley/pkg/response"
)

// LogPrefixClassify tags classify endpoint logs.
const LogPrefixClassify = "internal.inspect.Classify"

// Classify godoc
// @Summary     Classify text
// @Description Scores text against candidate intents and returns the match, if any, with per-candidate confidence.
// @Tags        Inspect
// @Accept      json
// @Produce     json
// @Param       body body classifyReq true "Text and candidate intents"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /v1/inspect/classify [POST]
func (h *handler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	var req classifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	candidates, err := h.candidates(req)
	if err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	result, err := h.classifier.Classify(ctx, req.Text, candidates)
	if err != nil {
		h.l.Errorf(ctx, "%s: %v", LogPrefixClassify, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	pkgResponse.OK(c, newClassifyResp(result))
}

// ListIntents godoc
// @Summary     List registered intents
// @Description Returns every registered intent with its example utterances, in registration order.
// @Tags        Inspect
// @Accept      json
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /v1/inspect/intents [GET]
func (h *handler) ListIntents(c *gin.Context) {
	pkgResponse.OK(c, newListIntentsResp(h.registry.List()))
}

// candidates resolves the request's candidate set: registered names and
// ad-hoc intents combined, or the whole registry when neither is given.
func (h *handler) candidates(req classifyReq) (intent.Set, error) {
	if len(req.Intents) == 0 && len(req.Candidates) == 0 {
		return intent.NewSet(h.registry.List()...)
	}

	intents := make([]intent.Intent, 0, len(req.Intents)+len(req.Candidates))
	for _, name := range req.Intents {
		in, ok := h.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", intent.ErrUnknownIntent, name)
		}
		intents = append(intents, in)
	}
	for _, cand := range req.Candidates {
		in, err := intent.New(cand.Name, cand.Examples...)
		if err != nil {
			return nil, err
		}
		in.Threshold = cand.Threshold
		intents = append(intents, in)
	}
	return intent.NewSet(intents...)
}
