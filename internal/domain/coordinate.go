package domain

// Coordinate - географическая точка (широта/долгота в градусах)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RoutePolyline - упорядоченная ломаная маршрута от старта к финишу
type RoutePolyline []Coordinate

// SamplePoint - точка маршрута, выбранная для запроса погоды.
// Coordinate встроена: широта и долгота доступны как point.Lat/point.Lon.
type SamplePoint struct {
	Coordinate `json:"coordinate"`
	CacheKey   string `json:"cache_key"`
}

// Location - результат геокодирования адреса
type Location struct {
	Coordinate  `json:"coordinate"`
	DisplayName string `json:"display_name"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}
