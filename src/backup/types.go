package backup

import "time"

// Metadata captures snapshot-level information for a package backup.
type Metadata struct {
	Type      string    `json:"type"` // always "packages"
	CreatedAt time.Time `json:"createdAt"`
	Formulae  int       `json:"formulae"`
	Casks     int       `json:"casks"`
}
