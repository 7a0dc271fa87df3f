package model

// ForecastEntry is one 3-hour forecast sample.
type ForecastEntry struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temp"`
}

// CuratedWeather is the trimmed view of the provider payload returned to clients.
type CuratedWeather struct {
	City            string          `json:"city"`
	Temperature     float64         `json:"temperature"`
	Humidity        int             `json:"humidity"`
	Description     string          `json:"description"`
	ForecastSummary []ForecastEntry `json:"forecast_summary"`
}
