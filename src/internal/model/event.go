package model

// Event is anything the messaging gateway can publish keyed by id.
type Event interface {
	GetId() string
}
