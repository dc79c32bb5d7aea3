package cachescan

// DefaultRules returns the built-in rule table. Order matters: when several
// types share a folder name, the first rule whose validation succeeds claims
// the directory for the whole scan.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "node-modules",
			DisplayName: "Node.js dependencies",
			FolderName:  "node_modules",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "cargo-target",
			DisplayName: "Rust build artifacts",
			FolderName:  "target",
			Predicates:  []Predicate{{SiblingFile: "Cargo.toml"}},
		},
		{
			ID:          "maven-target",
			DisplayName: "Maven build artifacts",
			FolderName:  "target",
			Predicates:  []Predicate{{SiblingFile: "pom.xml"}, {SiblingFile: "build.gradle"}},
		},
		{
			ID:          "sbt-target",
			DisplayName: "sbt build artifacts",
			FolderName:  "target",
			Predicates:  []Predicate{{SiblingFile: "build.sbt"}},
		},
		{
			ID:          "gradle-build",
			DisplayName: "Gradle build output",
			FolderName:  "build",
			Predicates: []Predicate{
				{SiblingFile: "build.gradle"},
				{SiblingFile: "build.gradle.kts"},
				{SiblingFile: "settings.gradle"},
				{SiblingFile: "settings.gradle.kts"},
			},
		},
		{
			ID:          "flutter-build",
			DisplayName: "Flutter build output",
			FolderName:  "build",
			Predicates:  []Predicate{{SiblingFile: "pubspec.yaml"}},
		},
		{
			ID:          "gradle-cache",
			DisplayName: "Gradle project cache",
			FolderName:  ".gradle",
			Predicates: []Predicate{
				{SiblingFile: "build.gradle"},
				{SiblingFile: "build.gradle.kts"},
				{SiblingFile: "settings.gradle"},
			},
		},
		{
			ID:          "python-bytecode",
			DisplayName: "Python bytecode cache",
			FolderName:  "__pycache__",
			Predicates:  []Predicate{{SiblingExt: ".py"}},
		},
		{
			ID:          "pytest-cache",
			DisplayName: "pytest cache",
			FolderName:  ".pytest_cache",
			Predicates: []Predicate{
				{SiblingExt: ".py"},
				{SiblingFile: "pyproject.toml"},
				{SiblingFile: "setup.py"},
			},
		},
		{
			ID:          "mypy-cache",
			DisplayName: "mypy cache",
			FolderName:  ".mypy_cache",
			Predicates: []Predicate{
				{SiblingExt: ".py"},
				{SiblingFile: "pyproject.toml"},
			},
		},
		{
			ID:          "tox-envs",
			DisplayName: "tox environments",
			FolderName:  ".tox",
			Predicates: []Predicate{
				{SiblingFile: "tox.ini"},
				{SiblingFile: "pyproject.toml"},
				{SiblingFile: "setup.py"},
			},
		},
		{
			ID:          "python-venv",
			DisplayName: "Python virtual environment",
			FolderName:  ".venv",
			Predicates: []Predicate{
				{SiblingFile: "pyproject.toml"},
				{SiblingFile: "requirements.txt"},
				{SiblingFile: "setup.py"},
				{SiblingFile: "Pipfile"},
			},
		},
		{
			ID:          "python-venv-plain",
			DisplayName: "Python virtual environment",
			FolderName:  "venv",
			Predicates: []Predicate{
				{SiblingFile: "pyproject.toml"},
				{SiblingFile: "requirements.txt"},
				{SiblingFile: "setup.py"},
				{SiblingFile: "Pipfile"},
			},
		},
		{
			ID:          "go-vendor",
			DisplayName: "Go vendored dependencies",
			FolderName:  "vendor",
			Predicates:  []Predicate{{SiblingFile: "go.mod"}},
		},
		{
			ID:          "php-vendor",
			DisplayName: "Composer dependencies",
			FolderName:  "vendor",
			Predicates:  []Predicate{{SiblingFile: "composer.json"}},
		},
		{
			ID:          "js-dist",
			DisplayName: "JavaScript build output",
			FolderName:  "dist",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "nextjs-cache",
			DisplayName: "Next.js build cache",
			FolderName:  ".next",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "nuxt-cache",
			DisplayName: "Nuxt build cache",
			FolderName:  ".nuxt",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "parcel-cache",
			DisplayName: "Parcel cache",
			FolderName:  ".parcel-cache",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "turbo-cache",
			DisplayName: "Turborepo cache",
			FolderName:  ".turbo",
			Predicates:  []Predicate{{SiblingFile: "package.json"}},
		},
		{
			ID:          "angular-cache",
			DisplayName: "Angular cache",
			FolderName:  ".angular",
			Predicates:  []Predicate{{SiblingFile: "angular.json"}},
		},
		{
			ID:          "cocoapods",
			DisplayName: "CocoaPods dependencies",
			FolderName:  "Pods",
			Predicates:  []Predicate{{SiblingFile: "Podfile"}},
		},
		{
			ID:          "xcode-derived-data",
			DisplayName: "Xcode derived data",
			FolderName:  "DerivedData",
			Predicates: []Predicate{
				{SiblingExt: ".xcodeproj"},
				{SiblingExt: ".xcworkspace"},
			},
		},
		{
			ID:          "elm-stuff",
			DisplayName: "Elm build artifacts",
			FolderName:  "elm-stuff",
			Predicates:  []Predicate{{SiblingFile: "elm.json"}},
		},
		{
			ID:          "mix-build",
			DisplayName: "Elixir build output",
			FolderName:  "_build",
			Predicates:  []Predicate{{SiblingFile: "mix.exs"}},
		},
		{
			ID:          "mix-deps",
			DisplayName: "Elixir dependencies",
			FolderName:  "deps",
			Predicates:  []Predicate{{SiblingFile: "mix.exs"}},
		},
		{
			ID:          "stack-work",
			DisplayName: "Haskell Stack artifacts",
			FolderName:  ".stack-work",
			Predicates:  []Predicate{{SiblingFile: "stack.yaml"}},
		},
		{
			ID:          "terraform-cache",
			DisplayName: "Terraform providers",
			FolderName:  ".terraform",
			Predicates:  []Predicate{{SiblingExt: ".tf"}},
		},
		{
			ID:          "zig-cache",
			DisplayName: "Zig build cache",
			FolderName:  "zig-cache",
			Predicates:  []Predicate{{SiblingFile: "build.zig"}},
		},
		{
			ID:          "zig-out",
			DisplayName: "Zig build output",
			FolderName:  "zig-out",
			Predicates:  []Predicate{{SiblingFile: "build.zig"}},
		},
	}
}
