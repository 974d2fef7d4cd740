package tooldef

import (
	"fmt"
	"math"
	"net/url"
)

// ValidationError reports the first argument that failed schema validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// ValidateURL checks that raw parses as an absolute http or https URL
// with a non-empty host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL is missing a host")
	}
	return nil
}

// ValidateArgs checks a caller-supplied argument map against the declared
// parameter schema. Validation stops at the first offending field: a missing
// required parameter, a wrong type, an out-of-range integer, an enum
// mismatch, or a malformed URL all fail here before any upstream call is
// made. Absent optional parameters are left to the caller to default.
func (d ToolDef) ValidateArgs(args map[string]any) error {
	for _, param := range d.Params {
		val, present := args[param.Name]
		if !present {
			if param.Required {
				return &ValidationError{Field: param.Name, Reason: "required parameter is missing"}
			}
			continue
		}

		switch param.Type {
		case ParamTypeString, ParamTypeURL:
			s, ok := val.(string)
			if !ok {
				return &ValidationError{Field: param.Name, Reason: "expected a string"}
			}
			if param.Required && s == "" {
				return &ValidationError{Field: param.Name, Reason: "must not be empty"}
			}
			if len(param.Enum) > 0 && !contains(param.Enum, s) {
				return &ValidationError{
					Field:  param.Name,
					Reason: fmt.Sprintf("value %q is not one of %v", s, param.Enum),
				}
			}
			if param.Type == ParamTypeURL {
				if err := ValidateURL(s); err != nil {
					return &ValidationError{Field: param.Name, Reason: err.Error()}
				}
			}

		case ParamTypeInteger:
			n, err := asInteger(val)
			if err != nil {
				return &ValidationError{Field: param.Name, Reason: err.Error()}
			}
			if param.Minimum != nil && float64(n) < *param.Minimum {
				return &ValidationError{
					Field:  param.Name,
					Reason: fmt.Sprintf("value %d is below the minimum of %g", n, *param.Minimum),
				}
			}
			if param.Maximum != nil && float64(n) > *param.Maximum {
				return &ValidationError{
					Field:  param.Name,
					Reason: fmt.Sprintf("value %d is above the maximum of %g", n, *param.Maximum),
				}
			}

		case ParamTypeBoolean:
			if _, ok := val.(bool); !ok {
				return &ValidationError{Field: param.Name, Reason: "expected a boolean"}
			}

		case ParamTypeStringMap:
			if err := asStringMap(val); err != nil {
				return &ValidationError{Field: param.Name, Reason: err.Error()}
			}
		}
	}

	return nil
}

// asInteger accepts the numeric shapes JSON decoding produces. A float64
// is only accepted when it carries an integral value.
func asInteger(val any) (int, error) {
	switch n := val.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected an integer, got %g", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer")
	}
}

func asStringMap(val any) error {
	switch m := val.(type) {
	case map[string]string:
		return nil
	case map[string]any:
		for k, v := range m {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("value for key %q must be a string", k)
			}
		}
		return nil
	default:
		return fmt.Errorf("expected an object with string values")
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
