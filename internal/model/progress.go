package model

import (
	"fmt"
	"math"
)

// Progress represents the state of the game download/install pipeline as
// reported by the backend. All fields come verbatim from progress events;
// the launcher never computes its own stage transitions.
type Progress struct {
	Stage       Stage
	Percent     int    // 0 to 100
	Message     string // human readable status line
	CurrentFile string // file currently being transferred
	Speed       string // human readable speed (e.g., "1.2MB/s")
	Downloaded  int64  // bytes downloaded so far
	Total       int64  // total bytes expected, 0 if unknown
}

// UpdateAsset describes a downloadable launcher build offered by the backend
type UpdateAsset struct {
	URL    string
	SHA256 string
}

// SelfUpdateState tracks the launcher's own update pipeline. It is fully
// independent from game download progress even though both arrive over the
// same event channel.
type SelfUpdateState struct {
	PendingAsset *UpdateAsset
	IsUpdating   bool
	Downloaded   int64
	Total        int64
}

// DetailLabel returns the secondary progress line: speed plus byte counts
// while transfer numbers are known, otherwise the current file name.
func (p Progress) DetailLabel() string {
	if p.Speed != "" && p.Total > 0 {
		return fmt.Sprintf("%s • %s / %s", p.Speed, FormatBytes(p.Downloaded), FormatBytes(p.Total))
	}
	return p.CurrentFile
}

// FormatBytes formats a byte count as a human readable size
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	sizes := []string{"B", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	if i == 0 {
		return fmt.Sprintf("%d %s", bytes, sizes[0])
	}
	return fmt.Sprintf("%.2f %s", value, sizes[i])
}
