// Package http provides http transport for detection
package http

import (
	stdhttp "net/http"

	"deyimci/internal/core/match"
	phttp "deyimci/internal/platform/net/http"
	detectdomain "deyimci/internal/services/detect/domain"
)

// Defaults applied when a request omits tuning fields
type Defaults struct {
	Threshold float64
	MaxGap    int
}

// Deps are the handler dependencies
type Deps struct {
	Detector detectdomain.DetectorPort
	Defaults Defaults
}

// Register mounts detection endpoints on the given router
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}
	phttp.PostJSON[DetectInput](r, "/", h.detect)
}

type handlers struct{ deps Deps }

// DetectInput is the detection request body
type DetectInput struct {
	Text string `json:"text" validate:"required,max=20000"`
	// Threshold overrides the configured decision cutoff, must be in (0,1)
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gt=0,lt=1"`
	// Mode is "exact" or "token-window", empty means exact
	Mode string `json:"mode,omitempty" validate:"omitempty,matchmode"`
	// MaxGap bounds inserted tokens in token-window mode
	MaxGap *int `json:"max_gap,omitempty" validate:"omitempty,min=0,max=10"`
}

// DetectResponse is the detection result payload
type DetectResponse struct {
	Mode       string                   `json:"mode"       example:"exact"`
	Threshold  float64                  `json:"threshold"  example:"0.6"`
	Count      int                      `json:"count"      example:"1"`
	Detections []detectdomain.Detection `json:"detections"`
}

// @Summary Detect idioms in a text
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body DetectInput true "Text and optional tuning"
// @Success 200 {object} DetectResponse "ok"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in DetectInput) (any, error) {
	threshold := h.deps.Defaults.Threshold
	if in.Threshold != nil {
		threshold = *in.Threshold
	}
	maxGap := h.deps.Defaults.MaxGap
	if in.MaxGap != nil {
		maxGap = *in.MaxGap
	}
	mode, err := match.ParseMode(in.Mode, maxGap)
	if err != nil {
		return nil, err
	}

	dets, err := h.deps.Detector.Detect(r.Context(), in.Text, detectdomain.Options{
		Threshold: threshold,
		Mode:      mode,
	})
	if err != nil {
		return nil, err
	}
	if dets == nil {
		dets = []detectdomain.Detection{}
	}
	return DetectResponse{
		Mode:       mode.String(),
		Threshold:  threshold,
		Count:      len(dets),
		Detections: dets,
	}, nil
}
