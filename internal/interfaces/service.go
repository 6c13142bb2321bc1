package interfaces

// Service interface defines the methods that every exposed interface of the
// daemon must be compliant with.
type Service interface {
	Start() error
	Stop()
}
