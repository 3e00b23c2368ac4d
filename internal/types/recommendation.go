package types

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"48.8566"`
	Longitude float64 `json:"longitude" example:"2.3522"`
}

// RecommendationRequest is the user input for one recommendation query.
type RecommendationRequest struct {
	Place       string `json:"place" example:"Paris, France"`          // Country, city or place name. Required.
	Preferences string `json:"preferences" example:"budget, family"` // Free-text travel preferences. Optional.
}

// MapView describes an interactive map with a single marker.
type MapView struct {
	Center      Coordinates `json:"center"`
	Zoom        int         `json:"zoom" example:"12"`
	Tooltip     string      `json:"tooltip" example:"Location: Paris, France"`
	TileURL     string      `json:"tile_url"`
	Attribution string      `json:"attribution"`
	Width       int         `json:"width" example:"700"`
	Height      int         `json:"height" example:"500"`
}

// RecommendationResult is everything produced by one pass through the
// recommendation flow. Errors holds user-facing messages for the steps that
// failed; the remaining fields are still populated where possible.
type RecommendationResult struct {
	Record      TravelRecord `json:"record"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Map         *MapView     `json:"map,omitempty"`
	Saved       bool         `json:"saved"`
	Errors      []string     `json:"errors,omitempty"`
}
