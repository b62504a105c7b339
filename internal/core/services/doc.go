// Package services implements the driving port interfaces: retrieval
// index management, roadmap generation, market analysis and resume
// matching. Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
package services
