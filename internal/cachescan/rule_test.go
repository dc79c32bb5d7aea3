package cachescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByID(t *testing.T, id string) Rule {
	t.Helper()

	for _, rule := range DefaultRules() {
		if rule.ID == id {
			return rule
		}
	}

	t.Fatalf("no rule %q in the default table", id)

	return Rule{}
}

func mkdirAll(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))

	return path
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestValidateTargetWithCargoManifest(t *testing.T) {
	parent := t.TempDir()
	target := mkdirAll(t, filepath.Join(parent, "target"))
	touch(t, filepath.Join(parent, "Cargo.toml"))

	assert.True(t, ruleByID(t, "cargo-target").Validate(target, parent))
	assert.False(t, ruleByID(t, "maven-target").Validate(target, parent))
	assert.False(t, ruleByID(t, "sbt-target").Validate(target, parent))
}

func TestValidateTargetWithPomOnly(t *testing.T) {
	parent := t.TempDir()
	target := mkdirAll(t, filepath.Join(parent, "target"))
	touch(t, filepath.Join(parent, "pom.xml"))

	assert.False(t, ruleByID(t, "cargo-target").Validate(target, parent))
	assert.True(t, ruleByID(t, "maven-target").Validate(target, parent))
}

func TestValidateTargetWithoutMarkers(t *testing.T) {
	parent := t.TempDir()
	target := mkdirAll(t, filepath.Join(parent, "target"))

	for _, id := range []string{"cargo-target", "maven-target", "sbt-target"} {
		assert.False(t, ruleByID(t, id).Validate(target, parent), id)
	}
}

func TestValidateExtensionPredicate(t *testing.T) {
	parent := t.TempDir()
	cache := mkdirAll(t, filepath.Join(parent, "__pycache__"))

	rule := ruleByID(t, "python-bytecode")
	assert.False(t, rule.Validate(cache, parent))

	touch(t, filepath.Join(parent, "main.py"))
	assert.True(t, rule.Validate(cache, parent))
}

func TestValidateExtensionPredicateMatchesBundleDirs(t *testing.T) {
	parent := t.TempDir()
	derived := mkdirAll(t, filepath.Join(parent, "DerivedData"))
	mkdirAll(t, filepath.Join(parent, "App.xcodeproj"))

	assert.True(t, ruleByID(t, "xcode-derived-data").Validate(derived, parent))
}

func TestValidateEmptyPredicatesAcceptsOnName(t *testing.T) {
	parent := t.TempDir()
	dir := mkdirAll(t, filepath.Join(parent, "junk"))

	rule := Rule{ID: "junk", FolderName: "junk"}
	assert.True(t, rule.Validate(dir, parent))
}

func TestValidateCustomPredicate(t *testing.T) {
	parent := t.TempDir()
	dir := mkdirAll(t, filepath.Join(parent, "scratch"))

	var sawCandidate string

	rule := Rule{
		ID:         "scratch",
		FolderName: "scratch",
		Predicates: []Predicate{{
			Match: func(candidatePath, _ string) bool {
				sawCandidate = candidatePath

				return true
			},
		}},
	}

	assert.True(t, rule.Validate(dir, parent))
	assert.Equal(t, dir, sawCandidate)
}

func TestDefaultRulesHaveUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})

	for _, rule := range DefaultRules() {
		_, dup := seen[rule.ID]
		assert.False(t, dup, rule.ID)
		seen[rule.ID] = struct{}{}

		assert.NotEmpty(t, rule.FolderName, rule.ID)
		assert.NotEmpty(t, rule.DisplayName, rule.ID)
	}
}
