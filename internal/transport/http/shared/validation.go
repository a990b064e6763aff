package shared

import (
	"errors"
	"net/http"
	"sort"

	"nomina/internal/input"
	"nomina/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// IssuesFrom flattens an input validation error into sorted field issues. It
// returns nil for any other error.
func IssuesFrom(err error) []ValidationIssue {
	var verr *input.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return nil
	}
	out := make([]ValidationIssue, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, ValidationIssue{Field: f.Field, Reason: f.Reason})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}
