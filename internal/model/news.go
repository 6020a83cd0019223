package model

// NewsItem is one entry of the rotating launcher news feed. Content is
// fetched once from the backend; only the rotation index is launcher state.
type NewsItem struct {
	Title    string
	DestURL  string
	Excerpt  string
	ImageRef string
}
