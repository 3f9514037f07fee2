// Package generation defines the boundary between the application core
// and external AI services that produce study content. The Generator
// interface keeps the core independent of any specific LLM provider.
package generation
