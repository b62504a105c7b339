// Package domain contains the core business entities and errors for the
// career analysis agent: documents and chunks for retrieval, job market
// data, and the structured reports produced by the LLM-backed services.
package domain
