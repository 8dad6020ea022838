// Package tenk summarizes sections of SEC Form 10-K annual reports.
// It pulls a company's latest 10-K from EDGAR, locates a requested Item
// (Business, Risk Factors, MD&A, ...) in the filing text, and hands the
// bounded slice to a language model for summarization and speech synthesis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package tenk
