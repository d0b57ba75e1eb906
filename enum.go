package reply

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// The "enum" rule of package http/req accepts only valid Enumerables.
type Enumerable interface {
	String() string
	Valid() error
}
