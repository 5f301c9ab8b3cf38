package inspect

import (
	"parley/internal/classify"
	"parley/internal/intent"
)

// classifyReq asks for one classification. Candidates come from registered
// intent names, inline ad-hoc intents, or both; with neither given the whole
// registry is used.
type classifyReq struct {
	Text       string        `json:"text"`
	Intents    []string      `json:"intents,omitempty"`
	Candidates []adHocIntent `json:"candidates,omitempty"`
}

// adHocIntent is an unregistered candidate supplied inline with the request.
type adHocIntent struct {
	Name      string   `json:"name"`
	Examples  []string `json:"examples"`
	Threshold float64  `json:"threshold,omitempty"`
}

type classifyResp struct {
	Matched    bool             `json:"matched"`
	Intent     string           `json:"intent,omitempty"`
	Confidence float64          `json:"confidence"`
	Text       string           `json:"text"`
	Scores     []classify.Score `json:"scores"`
}

func newClassifyResp(result classify.Result) classifyResp {
	return classifyResp{
		Matched:    result.Matched,
		Intent:     result.Intent.Name,
		Confidence: result.Confidence,
		Text:       result.Text,
		Scores:     result.Scores,
	}
}

type intentResp struct {
	Name      string   `json:"name"`
	Examples  []string `json:"examples"`
	Threshold float64  `json:"threshold,omitempty"`
}

type listIntentsResp struct {
	Intents []intentResp `json:"intents"`
}

func newListIntentsResp(intents []intent.Intent) listIntentsResp {
	out := listIntentsResp{Intents: make([]intentResp, 0, len(intents))}
	for _, in := range intents {
		out.Intents = append(out.Intents, intentResp{
			Name:      in.Name,
			Examples:  in.Examples,
			Threshold: in.Threshold,
		})
	}
	return out
}
