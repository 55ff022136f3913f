package store

// Entry represents a single manifest snapshot discovered in a store.
type Entry struct {
	Timestamp string // YYYYMMDDThhmmssZ
	Path      string // absolute filesystem path to the snapshot directory
}

// Store lists manifest snapshots.
type Store interface {
	List() ([]Entry, error)
	Latest() (Entry, error)
}
