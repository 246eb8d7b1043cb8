// Package model binds the usage classifier to an ONNX transformer checkpoint.
// The model is a binary head over a BERT style encoder, logit index 1 is the
// idiomatic class
package model

import (
	"context"
	"math"
	"sync"

	perr "deyimci/internal/platform/errors"
	"deyimci/internal/platform/logger"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the runtime library, model, and tokenizer artifacts
type Config struct {
	// OrtLib is the path to the onnxruntime shared library
	OrtLib string
	// ModelPath is the exported ONNX checkpoint
	ModelPath string
	// TokenizerPath is the tokenizer.json next to the checkpoint
	TokenizerPath string
	// MaxSeqLen caps encoder input length, default 128
	MaxSeqLen int
}

const defaultMaxSeqLen = 128

var (
	ortOnce sync.Once
	ortErr  error
)

// initRuntime loads the shared library once per process
func initRuntime(lib string) error {
	ortOnce.Do(func() {
		if lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// Classifier scores text spans as idiomatic vs literal usage
type Classifier struct {
	tk     *tokenizer.Tokenizer
	sess   *ort.DynamicAdvancedSession
	maxSeq int
	log    logger.Logger

	mu     sync.Mutex
	closed bool
}

// New loads the tokenizer and opens an inference session
func New(cfg Config, log logger.Logger) (*Classifier, error) {
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = defaultMaxSeqLen
	}
	if err := initRuntime(cfg.OrtLib); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "model: init onnxruntime")
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable,
			"model: load tokenizer %s", cfg.TokenizerPath)
	}

	sess, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"},
		nil,
	)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable,
			"model: open session %s", cfg.ModelPath)
	}

	log.Info().
		Str("model", cfg.ModelPath).
		Int("max_seq_len", cfg.MaxSeqLen).
		Msg("classifier ready")

	return &Classifier{tk: tk, sess: sess, maxSeq: cfg.MaxSeqLen, log: log}, nil
}

// Score returns the probability in [0,1] that the span of text between the
// given rune offsets is used idiomatically. The whole sentence is the model
// input, the span bounds are part of the scoring contract and validated here.
// Context expiry during inference is reported as a classification failure
func (c *Classifier) Score(ctx context.Context, text string, spanStart, spanEnd int) (float64, error) {
	if text == "" {
		return 0, perr.Classificationf("model: empty scoring input")
	}
	if spanStart < 0 || spanStart >= spanEnd {
		return 0, perr.Classificationf("model: invalid span [%d,%d)", spanStart, spanEnd)
	}

	type result struct {
		p   float64
		err error
	}
	done := make(chan result, 1)
	go func() {
		p, err := c.infer(text)
		done <- result{p: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, perr.Wrapf(ctx.Err(), perr.ErrorCodeClassification, "model: scoring timed out")
	case r := <-done:
		return r.p, r.err
	}
}

func (c *Classifier) infer(text string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, perr.Classificationf("model: classifier closed")
	}

	enc, err := c.tk.EncodeSingle(text, true)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeClassification, "model: encode input")
	}

	ids, mask, types := padTo(enc, c.maxSeq)
	seq := int64(len(ids))
	shape := ort.NewShape(1, seq)

	idTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeClassification, "model: input tensor")
	}
	defer idTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeClassification, "model: mask tensor")
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, types)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeClassification, "model: type tensor")
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	err = c.sess.Run([]ort.Value{idTensor, maskTensor, typeTensor}, outputs)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeClassification, "model: run session")
	}
	out := outputs[0].(*ort.Tensor[float32])
	defer out.Destroy()

	logits := out.GetData()
	if len(logits) < 2 {
		return 0, perr.Classificationf("model: expected 2 logits, got %d", len(logits))
	}
	return softmaxPositive(float64(logits[0]), float64(logits[1])), nil
}

// Close releases the session, further Score calls fail
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.sess != nil {
		return c.sess.Destroy()
	}
	return nil
}

// padTo truncates or pads the encoding to maxSeq and converts to int64
func padTo(enc *tokenizer.Encoding, maxSeq int) (ids, mask, types []int64) {
	n := len(enc.Ids)
	if n > maxSeq {
		n = maxSeq
	}
	ids = make([]int64, maxSeq)
	mask = make([]int64, maxSeq)
	types = make([]int64, maxSeq)
	for i := 0; i < n; i++ {
		ids[i] = int64(enc.Ids[i])
		mask[i] = 1
		if i < len(enc.TypeIds) {
			types[i] = int64(enc.TypeIds[i])
		}
	}
	return ids, mask, types
}

// softmaxPositive returns exp(b) / (exp(a) + exp(b)) computed stably
func softmaxPositive(a, b float64) float64 {
	m := math.Max(a, b)
	ea := math.Exp(a - m)
	eb := math.Exp(b - m)
	return eb / (ea + eb)
}
