package repo

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	perr "deyimci/internal/platform/errors"
	"deyimci/internal/services/eval/domain"
)

// ReadJSONL decodes one labeled example per line, blank lines are skipped.
// Examples without an id get a line-number id
func ReadJSONL(r io.Reader) ([]domain.LabeledExample, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []domain.LabeledExample
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var ex domain.LabeledExample
		if err := json.Unmarshal([]byte(raw), &ex); err != nil {
			return nil, perr.JSONErrf("eval: line %d: %v", line, err)
		}
		if ex.Text == "" {
			return nil, perr.InvalidArgf("eval: line %d: missing text", line)
		}
		if ex.ID == "" {
			ex.ID = strconv.Itoa(line)
		}
		out = append(out, ex)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "eval: read labeled set")
	}
	return out, nil
}
