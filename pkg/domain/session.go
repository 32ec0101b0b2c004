package domain

// Map types accepted by the createSession endpoint.
const (
	MapTypeRoadmap   = "roadmap"
	MapTypeSatellite = "satellite"
	MapTypeTerrain   = "terrain"
)

// SessionRequest is the createSession payload.
type SessionRequest struct {
	MapType  string `json:"mapType"`
	Language string `json:"language"`
	Region   string `json:"region"`
}

// DefaultSessionRequest returns the satellite/en-US/US session parameters.
func DefaultSessionRequest() SessionRequest {
	return SessionRequest{
		MapType:  MapTypeSatellite,
		Language: "en-US",
		Region:   "US",
	}
}

// Session is a short-lived tile session returned by createSession.
type Session struct {
	Token       string `json:"session"`
	Expiry      string `json:"expiry,omitempty"`
	TileWidth   int    `json:"tileWidth,omitempty"`
	TileHeight  int    `json:"tileHeight,omitempty"`
	ImageFormat string `json:"imageFormat,omitempty"`
}
