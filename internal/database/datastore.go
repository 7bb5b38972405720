package database

// DataStore defines the unified interface for all data operations needed by the daemon.
// Consumers can depend on smaller interfaces (e.g., ReviewRepository, UserReader)
// for better testability and clearer dependencies.
type DataStore interface {
	UserRepository
	ProductRepository
	ReviewRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
