package main

import (
	"log"

	"place-journal-be/internal/model"

	"gorm.io/gorm"
)

// SeedCountries populates a starter set of countries grouped by continent.
// Safe to re-run; rows are matched by name.
func SeedCountries(db *gorm.DB) {
	countries := []model.Country{
		{Name: "France", Continent: "Europe"},
		{Name: "Spain", Continent: "Europe"},
		{Name: "Italy", Continent: "Europe"},
		{Name: "Portugal", Continent: "Europe"},
		{Name: "United Kingdom", Continent: "Europe"},
		{Name: "Japan", Continent: "Asia"},
		{Name: "Thailand", Continent: "Asia"},
		{Name: "Vietnam", Continent: "Asia"},
		{Name: "United States", Continent: "North America"},
		{Name: "Canada", Continent: "North America"},
		{Name: "Mexico", Continent: "North America"},
		{Name: "Brazil", Continent: "South America"},
		{Name: "Argentina", Continent: "South America"},
		{Name: "Morocco", Continent: "Africa"},
		{Name: "Australia", Continent: "Oceania"},
	}

	for _, c := range countries {
		var existing model.Country
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&c).Error; err != nil {
				log.Printf("Warn: failed to seed country %s: %v", c.Name, err)
			}
			continue
		}
		if err != nil {
			log.Printf("Warn: failed to check country %s: %v", c.Name, err)
		}
	}
	log.Printf("Seeded %d countries", len(countries))
}

// SeedMetroAreas populates a small city/borough/neighborhood tree. Each
// metro area key groups the cities whose neighborhoods rank against each
// other.
func SeedMetroAreas(db *gorm.DB) {
	type neighborhoodSeed struct {
		Borough       string
		Neighborhoods []string
	}
	type citySeed struct {
		Name         string
		MetroAreaKey string
		Country      string
		Boroughs     []neighborhoodSeed
	}

	cities := []citySeed{
		{
			Name: "New York", MetroAreaKey: "nyc-metro", Country: "United States",
			Boroughs: []neighborhoodSeed{
				{Borough: "Manhattan", Neighborhoods: []string{"West Village", "SoHo", "Harlem", "East Village"}},
				{Borough: "Brooklyn", Neighborhoods: []string{"Williamsburg", "Park Slope", "DUMBO"}},
			},
		},
		{
			Name: "Jersey City", MetroAreaKey: "nyc-metro", Country: "United States",
			Boroughs: []neighborhoodSeed{
				{Borough: "Downtown Jersey City", Neighborhoods: []string{"Paulus Hook", "Newport"}},
			},
		},
		{
			Name: "Paris", MetroAreaKey: "paris-metro", Country: "France",
			Boroughs: []neighborhoodSeed{
				{Borough: "Le Marais", Neighborhoods: []string{"Haut Marais", "Saint-Paul"}},
				{Borough: "Montmartre", Neighborhoods: []string{"Abbesses", "Pigalle"}},
			},
		},
		{
			Name: "Tokyo", MetroAreaKey: "tokyo-metro", Country: "Japan",
			Boroughs: []neighborhoodSeed{
				{Borough: "Shibuya", Neighborhoods: []string{"Harajuku", "Ebisu", "Daikanyama"}},
				{Borough: "Shinjuku", Neighborhoods: []string{"Kabukicho", "Golden Gai"}},
			},
		},
	}

	for _, c := range cities {
		var country model.Country
		if err := db.Where("name = ?", c.Country).First(&country).Error; err != nil {
			log.Printf("Warn: country %s missing, skipping city %s", c.Country, c.Name)
			continue
		}

		city := model.City{Name: c.Name, MetroAreaKey: c.MetroAreaKey, CountryId: country.Id}
		if err := db.Where("name = ? AND metro_area_key = ?", c.Name, c.MetroAreaKey).
			FirstOrCreate(&city, city).Error; err != nil {
			log.Printf("Warn: failed to seed city %s: %v", c.Name, err)
			continue
		}

		for _, b := range c.Boroughs {
			borough := model.Borough{Name: b.Borough, CityId: city.Id}
			if err := db.Where("name = ? AND city_id = ?", b.Borough, city.Id).
				FirstOrCreate(&borough, borough).Error; err != nil {
				log.Printf("Warn: failed to seed borough %s: %v", b.Borough, err)
				continue
			}

			for _, n := range b.Neighborhoods {
				neighborhood := model.Neighborhood{Name: n, BoroughId: borough.Id}
				if err := db.Where("name = ? AND borough_id = ?", n, borough.Id).
					FirstOrCreate(&neighborhood, neighborhood).Error; err != nil {
					log.Printf("Warn: failed to seed neighborhood %s: %v", n, err)
				}
			}
		}
	}
	log.Printf("Seeded %d metro areas", len(cities))
}
