package ui

// BuildingCard is one entry of the buildings menu.
type BuildingCard struct {
	Name       string
	Cost       string
	Production string
	Affordable bool
}

// BuildingsMenuData fills the buildings menu.
type BuildingsMenuData struct {
	Title string
	Cards []BuildingCard
}

// BuildingInfo fills the building panel.
type BuildingInfo struct {
	Name        string
	Description string
	Production  string
	Workers     int
	MaxWorkers  int
	Idle        int
	Paused      bool
	Progress    float64
}

// ResourceValue is a named, formatted stock for the header.
type ResourceValue struct {
	Name   string
	Amount string
}

// HeaderData fills the city header.
type HeaderData struct {
	Resources  []ResourceValue
	Population int
	Workers    int
	Stats      string
}
