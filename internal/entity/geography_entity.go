package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reference geography. Countries group by continent; cities sharing a
// MetroAreaKey form one metropolitan area (e.g. the cities making up greater
// Paris). Boroughs subdivide a city, neighborhoods subdivide a borough.

type Country struct {
	Id        uuid.UUID
	Name      string
	Continent string
	CreatedAt time.Time
}

type City struct {
	Id           uuid.UUID
	Name         string
	MetroAreaKey string
	CountryId    uuid.UUID
	CreatedAt    time.Time
}

type Borough struct {
	Id        uuid.UUID
	Name      string
	CityId    uuid.UUID
	CreatedAt time.Time
}

type Neighborhood struct {
	Id        uuid.UUID
	Name      string
	BoroughId uuid.UUID
	CreatedAt time.Time
}
