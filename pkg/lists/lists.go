// Package lists provides the built-in location and keyword lists and loads
// user-supplied replacements from YAML.
package lists

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tweetgrid/pkg/models"
)

// Lists is the search grid: every keyword is queried at every location.
type Lists struct {
	Locations []models.Location `yaml:"locations"`
	Keywords  []string          `yaml:"keywords"`
}

// Defaults returns the built-in grid: survey points in Mumbai, Delhi and
// Bangalore crossed with land-use and sentiment keywords.
func Defaults() Lists {
	return Lists{
		Locations: defaultLocations(),
		Keywords:  DefaultKeywords(),
	}
}

// Load reads a lists file. Either section may be omitted; the built-in list
// fills the gap so a file can override just locations or just keywords.
func Load(path string) (Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lists{}, fmt.Errorf("failed to read lists file: %w", err)
	}

	var l Lists
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Lists{}, fmt.Errorf("failed to parse lists file %s: %w", path, err)
	}

	if len(l.Locations) == 0 {
		l.Locations = defaultLocations()
	}
	if len(l.Keywords) == 0 {
		l.Keywords = DefaultKeywords()
	}
	return l, nil
}

func defaultLocations() []models.Location {
	return []models.Location{
		{Geo: "19.0760,72.8777,0.5km", Name: "Mumbai_Central"},
		{Geo: "19.1136,72.8697,0.5km", Name: "Mumbai_South"},
		{Geo: "19.0883,72.8385,0.5km", Name: "Mumbai_East"},
		{Geo: "28.6139,77.2090,0.5km", Name: "Delhi_Central"},
		{Geo: "28.5244,77.1855,0.5km", Name: "Delhi_South"},
		{Geo: "12.9352,77.6245,0.5km", Name: "Bangalore_Central"},
	}
}

// Keyword categories for urban land-use classification. DefaultKeywords
// concatenates them in a fixed order, so the enumeration sequence is stable
// across runs.
var (
	residentialKeywords = []string{
		"House", "Home", "Bungalow", "Villa", "Condominium", "Duplex",
		"Townhouse", "Estate", "Residential Area", "Apartment Complex",
		"Multi-family home", "Single-family home", "Sleep", "Bedtime",
		"Family", "Household", "Domestic", "Living", "Comfort",
		"Ghar", "Niwas", "Vasahat", "Jhuggi", "Slum", "Chawl",
	}

	commercialKeywords = []string{
		"Retail", "Shop", "Store", "Supermarket", "Marketplace", "Business",
		"Office", "Commercial Space", "Outlet", "Franchise", "Corporate",
		"Service Center", "Mall", "Shopping Plaza", "Food Court",
		"Buy", "Purchase", "Selling", "Sale", "Deal", "Offer", "Discount",
		"Bazaar", "Haat", "Dukaan", "Vyapar", "Showroom", "Market",
	}

	industrialKeywords = []string{
		"Factory", "Manufacturing", "Industry", "Plant", "Storage", "Godown",
		"Distribution Center", "Workshop", "Production Facility",
		"Industrial Complex", "Assembly Line", "Machinery", "Processing",
	}

	transportKeywords = []string{
		"Airport", "Train Station", "Bus Station", "Subway", "Tram",
		"Taxi Stand", "Parking Lot", "Toll Booth", "Port", "Dock", "Harbor",
		"Bus Terminal", "Metro", "Car Park", "Commute", "Traffic", "Transit",
		"Congestion", "Rush hour", "Delay", "Journey", "Commuter",
		"Gaadi", "Yatayat", "Manchhal", "Rasta", "Sthanak",
	}

	hospitalityKeywords = []string{
		"Hotel", "Motel", "Inn", "Resort", "Hostel", "Lodge", "Guesthouse",
		"Restaurant", "Cafe", "Coffee", "Eating", "Dinner", "Lunch",
		"Breakfast", "Snack", "Dine", "Cuisine", "Menu", "Order",
		"Dhaba", "Khana", "Bhojan", "Rasoi", "Chai", "Street food",
	}

	educationKeywords = []string{
		"School", "College", "University", "Campus", "Student", "Study",
		"Class", "Learning", "Academic", "Exam", "Teacher", "Lecture",
		"Admission", "Graduation", "Tutorial", "Education",
		"Pathshala", "Vidyalaya", "Mahavidyalaya", "Shiksha", "Vidyarthi",
	}

	healthcareKeywords = []string{
		"Hospital", "Clinic", "Doctor", "Medical", "Health", "Patient",
		"Treatment", "Pharmacy", "Medicine", "Appointment", "Check-up",
		"Illness", "Sick", "Recovery", "Vaccine", "Emergency", "Surgery",
		"Vaidya", "Chikitsalaya", "Aushadhi", "Aarogya",
	}

	recreationKeywords = []string{
		"Park", "Playground", "Sports Facility", "Swimming Pool", "Gym",
		"Fitness Center", "Spa", "Amusement Park", "Zoo", "Garden",
		"Beach", "Golf Course", "Theater", "Cinema", "Arcade",
		"Recreation", "Entertainment", "Leisure", "Fun", "Enjoy",
		"Movie", "Game", "Play", "Sports", "Exercise", "Fitness",
		"Udyan", "Krida", "KheL", "Vyayam", "Manoranjan",
	}

	religiousKeywords = []string{
		"Church", "Temple", "Mosque", "Synagogue", "Gurudwara", "Shrine",
		"Cemetery", "Crematorium", "Chapel", "Religious Site",
		"Prayer", "Worship", "Ceremony", "Festival", "Celebration",
		"Spiritual", "Community", "Faith", "Ritual", "Sacred",
		"Mandir", "Masjid", "Gurdwara", "Puja", "Namaz",
	}

	civicKeywords = []string{
		"Library", "Public Park", "Community Hall", "Police Station",
		"Fire Station", "Government Office", "Public Restroom", "Town Hall",
		"City Hall", "Municipal Building", "Court House", "Military Base",
		"Post Office", "Embassy",
	}

	agriculturalKeywords = []string{
		"Farm", "Agricultural Land", "Crop Field", "Orchard", "Vineyard",
		"Dairy", "Poultry", "Barn", "Greenhouse", "Livestock", "Pasture",
		"Plantation", "Farming Equipment", "Tractor",
		"Kheti", "Khetihaad", "Fasul", "Beej", "Khad", "Sinchai", "Pashu",
	}

	utilityKeywords = []string{
		"Power Plant", "Water Treatment", "Sewage Plant", "Gas Station",
		"Petrol Pump", "Electric Substation", "Water Pump", "Recycling Center",
		"Wind Farm", "Solar Farm",
	}

	naturalKeywords = []string{
		"National Park", "Wetland", "Marsh", "Forest", "Wildlife Sanctuary",
		"Conservation Area", "Protected Area", "Green Zone", "Eco Park",
	}

	culturalKeywords = []string{
		"Museum", "Art Gallery", "Heritage Site", "Monument", "Historic Site",
		"Archaeological Site", "Cultural Center", "Convention Center",
	}

	sentimentKeywords = []string{
		"Love", "Amazing", "Great", "Awesome", "Perfect", "Beautiful",
		"Lovely", "Wonderful", "Fantastic", "Excellent", "Best",
		"Busy", "Thriving", "Vibrant", "Lively", "Congested",
		"Stuck", "Delayed", "Chaos", "Messy", "Dirty", "Noisy",
		"Poor", "Bad", "Awful", "Problem", "Exhausted", "Tired",
	}
)

// DefaultKeywords returns the combined built-in keyword list.
func DefaultKeywords() []string {
	groups := [][]string{
		residentialKeywords,
		commercialKeywords,
		industrialKeywords,
		transportKeywords,
		hospitalityKeywords,
		educationKeywords,
		healthcareKeywords,
		recreationKeywords,
		religiousKeywords,
		civicKeywords,
		agriculturalKeywords,
		utilityKeywords,
		naturalKeywords,
		culturalKeywords,
		sentimentKeywords,
	}

	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
