package ports

// SearchPath is the ordered set of directories an importer looks in.
//
//go:generate go run go.uber.org/mock/mockgen -source=search_path.go -destination=mocks/mock_search_path.go -package=mocks
type SearchPath interface {
	// Register adds dir to the search path. Registering a directory twice keeps
	// its first position.
	Register(dir string)

	// Dirs returns a copy of the registered directories in registration order.
	Dirs() []string
}
