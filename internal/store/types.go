package store

// Hash is used in the store to represent a serializable MD5 hash.
type Hash string

// Figure is what the store remembers about one rendered figure.
type Figure struct {

	// The hash of everything the figure was rendered from: the
	// reshaped data, the titles and the style.
	InputHash Hash `json:"inputHash,omitempty"`

	// The hash of the PNG that was written, so that a figure
	// edited by hand is rendered again.
	OutputHash Hash `json:"outputHash,omitempty"`
}

// Store represents the JSON written (by default) to
// .momentsens/store.json.
type Store struct {

	// The version of momentsens that wrote the store. A store
	// written by a different major version is discarded.
	Version string `json:"version,omitempty"`

	// Map from absolute figure paths to what they were rendered
	// from.
	Figures map[string]*Figure `json:"figures,omitempty"`

	path string
}
