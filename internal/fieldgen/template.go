package fieldgen

import (
	"fmt"
	"regexp"
	"strconv"

	"go-corrgen/internal/model"
)

var tokenPattern = regexp.MustCompile(`\{(seq:(\d+)d|[a-zA-Z0-9_]+)\}`)

// RenderTemplate expands a string{format} template (SPEC_FULL §4.A):
// {seq:NNd} becomes the entity's zero-padded sequence counter, and any
// other {name} token is substituted with the current record's bound field
// of that name, rendered as a string. An unbound {name} token fails with a
// *model.ConfigError.
func RenderTemplate(format string, seq int64, rec *model.Record, entity string) (string, error) {
	var firstErr error
	result := tokenPattern.ReplaceAllStringFunc(format, func(tok string) string {
		if firstErr != nil {
			return tok
		}
		inner := tok[1 : len(tok)-1]
		if len(inner) > 4 && inner[:4] == "seq:" && inner[len(inner)-1] == 'd' {
			widthStr := inner[4 : len(inner)-1]
			width, err := strconv.Atoi(widthStr)
			if err != nil {
				firstErr = &model.ConfigError{Entity: entity, Msg: fmt.Sprintf("bad seq width in template %q", format)}
				return tok
			}
			return fmt.Sprintf("%0*d", width, seq)
		}
		if rec == nil {
			firstErr = &model.ConfigError{Entity: entity, Field: inner, Msg: "unbound template field"}
			return tok
		}
		v, ok := rec.Get(inner)
		if !ok {
			firstErr = &model.ConfigError{Entity: entity, Field: inner, Msg: "unbound template field"}
			return tok
		}
		return v.AsString()
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
