package interfaces

// OutputReporter emits named results to the calling environment
type OutputReporter interface {
	SetOutput(name, value string) error
}
