package mocks

import "careops/infras/otel"

// noopScope drops everything; services under test only need the calls to succeed.
type noopScope struct{}

func (noopScope) AddEvent(string)              {}
func (noopScope) End()                         {}
func (noopScope) SetAttribute(string, any)     {}
func (noopScope) SetAttributes(map[string]any) {}
func (noopScope) TraceError(error)             {}
func (noopScope) TraceIfError(error)           {}

func NewScope() otel.Scope {
	return noopScope{}
}
