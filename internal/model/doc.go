// Package model defines domain data structures used across the app: release
// branches, download/install progress, self-update state, and news entries.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
package model
