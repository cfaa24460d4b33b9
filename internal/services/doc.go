// Package services holds the error markers shared by the organizer and its
// external integrations, and the clients for those integrations (see llm).
//
// Wrap tags a failure with a marker (external tool, validation, not found...)
// plus the operation and file it concerns. FailureStatus turns the marker into
// the status written to the journal: validation and not-found problems mean
// the file was skipped, anything else is a failure.
package services
