package ports

// InputResolver defines the interface for resolving file patterns declared in
// a manifest to concrete file paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs resolves the given patterns against root, preserving
	// pattern order and dropping duplicates.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
