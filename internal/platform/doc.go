package platform

// Package platform contains OS integration helpers: filesystem directories
// and opening folders in the system file manager.
