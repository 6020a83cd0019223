package ui

// Package ui contains the Fyne-based desktop user interface for the launcher.
// It wires user interactions to the launch controller and renders session
// store snapshots: play/progress row, branch and version selection, update
// banner, news, and errors. All UI strings are localized via Localization.
