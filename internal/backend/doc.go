package backend

// Package backend defines the command and event surface of the external
// backend host process: the Gateway interface, the push Event envelope with
// defensive payload decoding, and a websocket client implementation of both.
