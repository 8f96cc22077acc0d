package input

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadValueFile reads a YAML value file.
func LoadValueFile(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading value file '%s'", path)
	}
	values, err := ParseValueFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading value file '%s'", path)
	}
	return values, nil
}

// ParseValueFile parses a YAML mapping into a value table. Nested mappings
// are flattened with dot notation, so
//
//	auth:
//	  token: abc
//
// yields the value "auth.token".
func ParseValueFile(data []byte) (Values, error) {
	doc := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing YAML")
	}

	result := map[string]string{}
	if err := flattenValues(doc, "", result); err != nil {
		return nil, err
	}
	return ValuesFromMap(result), nil
}

func flattenValues(m map[string]interface{}, prefix string, result map[string]string) error {
	for key, v := range m {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch v := v.(type) {
		case string:
			result[name] = v
		case int, int64, uint64, float64, bool:
			result[name] = fmt.Sprintf("%v", v)
		case time.Time:
			result[name] = v.Format(time.RFC3339)
		case map[string]interface{}:
			if err := flattenValues(v, name, result); err != nil {
				return err
			}
		case nil:
			return errors.Errorf("value of '%s' is null", name)
		default:
			return errors.Errorf("unsupported value type for '%s' (valid: string, number, boolean, mapping): %T", name, v)
		}
	}
	return nil
}
