package ports

// InputResolver defines the interface for resolving input files.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs expands the given patterns relative to root into a sorted
	// list of absolute paths. Patterns without glob metacharacters must exist.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
