package model

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-quote-pipeline/internal/domain"
)

// validate is the package-level validator instance.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the operation name and the parameters that operation
// cannot default. The first problem is returned as a domain.ValidationError.
func (s JobSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return domain.NewValidationErrorWithValue(strings.ToLower(e.Field()),
				"must be one of: "+strings.Join(operationNames(), ", "), e.Value())
		}
		return domain.NewValidationError("spec", err.Error())
	}

	p := s.Params
	switch s.Operation {
	case OpChunk:
		return firstMissing(map[string]string{"source": p.Source, "outputName": p.OutputName})
	case OpSpeaker:
		return firstMissing(map[string]string{"speaker": p.Speaker, "year": p.Year})
	case OpCombine:
		return firstMissing(map[string]string{"speaker": p.Speaker})
	case OpConfidence:
		if p.Cutoff == nil {
			return domain.NewValidationError("cutoff", "is required")
		}
		return firstMissing(map[string]string{"input": p.Input})
	case OpOrgs, OpSentiment, OpCategorize:
		return firstMissing(map[string]string{"input": p.Input})
	case OpPlot:
		return firstMissing(map[string]string{"input": p.Input, "org": p.Org})
	}
	return nil
}

// firstMissing reports the alphabetically first empty field, so errors are stable.
func firstMissing(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	first := missing[0]
	for _, m := range missing[1:] {
		if m < first {
			first = m
		}
	}
	return domain.NewValidationError(first, "is required")
}

func operationNames() []string {
	names := make([]string, len(Operations))
	for i, op := range Operations {
		names[i] = string(op)
	}
	return names
}
