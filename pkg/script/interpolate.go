package script

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/fusemcp/fusemcp/pkg/domain"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolate substitutes every {name} placeholder in template with the
// formatted value from params. A placeholder with no matching key is a
// substitution error: it means the processor and template disagree, which
// is a defect, never something to skip silently.
func interpolate(tool, template string, params Params) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		value, ok := params[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return match
		}
		return formatValue(value)
	})
	if missing != "" {
		return "", domain.ErrSubstitution(tool, missing)
	}
	return out, nil
}

// formatValue renders a parameter value as Python source text.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSON numbers arrive as float64; render whole values without a
		// fractional part so indices and counts stay integer literals.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
