package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaeyoung0509/Meld/internal/errlist"
)

func TestParseSubsetSections(t *testing.T) {
	content := `# header comment
schema_version = 1

[coverage]
allow_unmapped_rest_operation_ids = ["healthCheck"] # trailing comment

[[links]]
rest_operation_id = "listPets"
grpc_method = "pet.v1.PetService/ListPets"
notes = "primary listing"
`
	errs := &errlist.List{}
	root := ParseSubset(strings.NewReader(content), errs)
	if !errs.Empty() {
		t.Fatalf("Unexpected errors: %v", errs.Messages())
	}

	coverage, ok := root["coverage"].(map[string]any)
	if !ok {
		t.Fatal("Expected coverage table")
	}
	allow, ok := coverage["allow_unmapped_rest_operation_ids"].([]any)
	if !ok || len(allow) != 1 || allow[0] != "healthCheck" {
		t.Errorf("Unexpected coverage allow list: %v", coverage["allow_unmapped_rest_operation_ids"])
	}

	links, ok := root["links"].([]any)
	if !ok || len(links) != 1 {
		t.Fatalf("Expected 1 link, got %v", root["links"])
	}
	link := links[0].(map[string]any)
	if link["rest_operation_id"] != "listPets" || link["grpc_method"] != "pet.v1.PetService/ListPets" {
		t.Errorf("Unexpected link record: %v", link)
	}
	if link["notes"] != "primary listing" {
		t.Errorf("Unexpected notes: %v", link["notes"])
	}
}

func TestParseSubsetRootKeys(t *testing.T) {
	errs := &errlist.List{}
	root := ParseSubset(strings.NewReader("flag = true\nn = 42\npadded = 0042\n"), errs)
	if !errs.Empty() {
		t.Fatalf("Unexpected errors: %v", errs.Messages())
	}
	if root["flag"] != true {
		t.Errorf("Expected boolean true, got %v", root["flag"])
	}
	if root["n"] != float64(42) {
		t.Errorf("Expected JSON number 42, got %v (%T)", root["n"], root["n"])
	}
	if root["padded"] != int64(42) {
		t.Errorf("Expected bare integer 42, got %v (%T)", root["padded"], root["padded"])
	}
}

func TestParseSubsetUnsupportedValue(t *testing.T) {
	errs := &errlist.List{}
	root := ParseSubset(strings.NewReader("foo = bar baz\n"), errs)
	if errs.Len() != 1 || !strings.Contains(errs.Messages()[0], "line 1: unsupported value: bar baz") {
		t.Errorf("Unexpected errors: %v", errs.Messages())
	}
	if v, present := root["foo"]; !present || v != nil {
		t.Errorf("Expected nil placeholder for unsupported value, got %v", v)
	}
}

func TestParseSubsetMissingEquals(t *testing.T) {
	errs := &errlist.List{}
	ParseSubset(strings.NewReader("[coverage]\njust some text\n"), errs)
	if errs.Len() != 1 || !strings.Contains(errs.Messages()[0], "line 2: expected key = value") {
		t.Errorf("Unexpected errors: %v", errs.Messages())
	}
}

func TestFallbackPartialLinkRecords(t *testing.T) {
	// Two blocks, each missing one required field: both must be rejected
	// individually with field-specific errors.
	path := filepath.Join(t.TempDir(), "links.toml")
	content := `[[links]]
rest_operation_id = "x"

[[links]]
grpc_method = "y"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := &errlist.List{}
	raw := LoadFallback(path, errs)

	if len(raw.Links) != 2 {
		t.Fatalf("Expected 2 link records, got %d", len(raw.Links))
	}
	msgs := errs.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 errors, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "links[0] requires non-empty string: grpc_method") {
		t.Errorf("Unexpected first error: %s", msgs[0])
	}
	if !strings.Contains(msgs[1], "links[1] requires non-empty string: rest_operation_id") {
		t.Errorf("Unexpected second error: %s", msgs[1])
	}
}

func TestFallbackAgreesWithTOMLParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.toml")
	if err := os.WriteFile(path, []byte(sampleLinks), 0o644); err != nil {
		t.Fatal(err)
	}

	tomlErrs := &errlist.List{}
	fromTOML := Load(path, tomlErrs)
	fallbackErrs := &errlist.List{}
	fromFallback := LoadFallback(path, fallbackErrs)

	if !tomlErrs.Empty() || !fallbackErrs.Empty() {
		t.Fatalf("Unexpected errors: toml=%v fallback=%v", tomlErrs.Messages(), fallbackErrs.Messages())
	}
	if len(fromTOML.Links) != len(fromFallback.Links) {
		t.Fatalf("Link count disagreement: toml=%d fallback=%d", len(fromTOML.Links), len(fromFallback.Links))
	}

	for i := range fromTOML.Links {
		a := fromTOML.Links[i].(map[string]any)
		b := fromFallback.Links[i].(map[string]any)
		for _, key := range []string{"rest_operation_id", "grpc_method", "rest_method", "rest_path", "notes"} {
			av, aok := a[key].(string)
			bv, bok := b[key].(string)
			if aok != bok || av != bv {
				t.Errorf("links[%d].%s disagreement: toml=%v fallback=%v", i, key, a[key], b[key])
			}
		}
	}
}
