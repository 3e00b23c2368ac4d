package types

// Placeholder values stored for the trip-planning columns until the
// recommendation text is broken down into structured fields.
const (
	DefaultSuitability       = "General"
	DefaultAgeConsiderations = "All ages"
	DefaultWeather           = "Varies"
	DefaultTerrain           = "Varies"
)

// TravelRecord is one persisted result of a recommendation query.
// Field names are part of the data file format and must not change.
type TravelRecord struct {
	Location          string  `json:"Location" example:"Paris, France"`
	Suitability       string  `json:"Suitability" example:"General"`
	AgeConsiderations string  `json:"AgeConsiderations" example:"All ages"`
	Weather           string  `json:"Weather" example:"Varies"`
	Terrain           string  `json:"Terrain" example:"Varies"`
	OtherDetails      string  `json:"OtherDetails"`
	Image             *string `json:"Image" example:"https://images.unsplash.com/photo-1502602898657"`
}

// NewTravelRecord builds a record for a place with the placeholder planning fields.
func NewTravelRecord(location, details string, image *string) TravelRecord {
	return TravelRecord{
		Location:          location,
		Suitability:       DefaultSuitability,
		AgeConsiderations: DefaultAgeConsiderations,
		Weather:           DefaultWeather,
		Terrain:           DefaultTerrain,
		OtherDetails:      details,
		Image:             image,
	}
}

// HasImage reports whether the record carries a non-empty image reference.
func (r TravelRecord) HasImage() bool {
	return r.Image != nil && *r.Image != ""
}
