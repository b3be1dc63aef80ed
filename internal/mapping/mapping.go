package mapping

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jaeyoung0509/Meld/internal/errlist"
)

// Raw holds the decoded mapping file before reconciliation. Coverage and
// Links are checked for shape here; identifier resolution is the
// reconciliation engine's job, so malformed link entries are reported but
// still passed through.
type Raw struct {
	Coverage map[string]any
	Links    []any
}

// Load decodes the mapping file with the TOML parser.
func Load(path string, errs *errlist.List) Raw {
	data, err := os.ReadFile(path)
	if err != nil {
		errs.Addf("failed to read links file: %v", err)
		return validate(map[string]any{}, errs)
	}

	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		errs.Addf("links.toml is not valid TOML: %v", err)
		root = map[string]any{}
	}
	return validate(root, errs)
}

// LoadFallback decodes the mapping file with the built-in restricted
// dialect parser instead of the TOML library.
func LoadFallback(path string, errs *errlist.List) Raw {
	f, err := os.Open(path)
	if err != nil {
		errs.Addf("failed to read links file: %v", err)
		return validate(map[string]any{}, errs)
	}
	defer f.Close()

	return validate(ParseSubset(f, errs), errs)
}

// validate applies the shape checks shared by both parse paths.
func validate(root map[string]any, errs *errlist.List) Raw {
	coverage, ok := root["coverage"].(map[string]any)
	if !ok {
		if _, present := root["coverage"]; present {
			errs.Add("[coverage] must be a table in links.toml")
		}
		coverage = map[string]any{}
	}

	// The TOML library decodes arrays of tables as []map[string]any while
	// the fallback parser produces []any; accept both.
	var links []any
	switch v := root["links"].(type) {
	case nil:
		links = []any{}
	case []any:
		links = v
	case []map[string]any:
		links = make([]any, len(v))
		for i, table := range v {
			links[i] = table
		}
	default:
		errs.Add("links.toml [[links]] entries must be an array")
		links = []any{}
	}

	for idx, link := range links {
		table, ok := link.(map[string]any)
		if !ok {
			errs.Addf("links[%d] must be a table", idx)
			continue
		}
		for _, key := range []string{"rest_operation_id", "grpc_method"} {
			value, _ := table[key].(string)
			if value == "" {
				errs.Addf("links[%d] requires non-empty string: %s", idx, key)
			}
		}
	}

	return Raw{Coverage: coverage, Links: links}
}
