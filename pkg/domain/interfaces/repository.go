package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Property() PropertyRepository

	Close() error
}
