package models

// Photo is a single profile photo stored by key, served via presigned URL.
type Photo struct {
	PhotoID string `dynamodbav:"photoId" json:"photoId"`
	URL     string `dynamodbav:"url" json:"url"`
}

// Prompt is an answered profile prompt. The response is either free text or
// a set of selected option tags, never both.
type Prompt struct {
	Question   string   `dynamodbav:"question" json:"question"`
	Answer     string   `dynamodbav:"answer,omitempty" json:"answer,omitempty"`
	Selections []string `dynamodbav:"selections,omitempty" json:"selections,omitempty"`
}

// Profile defines the structure for user profiles
type Profile struct {
	UserID        string   `dynamodbav:"userId"`
	Name          string   `dynamodbav:"name,omitempty"`
	EmailID       string   `dynamodbav:"emailId,omitempty"`
	Bio           string   `dynamodbav:"bio,omitempty"`
	Age           int      `dynamodbav:"age,omitempty"`
	Gender        string   `dynamodbav:"gender,omitempty"`
	Orientation   string   `dynamodbav:"orientation,omitempty"`
	LookingFor    string   `dynamodbav:"lookingFor,omitempty"`
	Interests     []string `dynamodbav:"interests,omitempty"`
	Photos        []Photo  `dynamodbav:"photos,omitempty"`
	Prompts       []Prompt `dynamodbav:"prompts,omitempty"`
	City          string   `dynamodbav:"city,omitempty"`
	Latitude      float64  `dynamodbav:"latitude,omitempty"`
	Longitude     float64  `dynamodbav:"longitude,omitempty"`
	AgeMin        int      `dynamodbav:"ageMin,omitempty"`
	AgeMax        int      `dynamodbav:"ageMax,omitempty"`
	MaxDistanceKm float64  `dynamodbav:"maxDistanceKm,omitempty"`
	HideProfile   bool     `dynamodbav:"hideProfile,omitempty"`
}

// HasLocation reports whether the profile carries usable coordinates.
// (0, 0) is treated as unset; it is open ocean, not a user location.
func (p Profile) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// AgeWindow returns the profile's preferred age range with defaults applied.
func (p Profile) AgeWindow() (int, int) {
	lo, hi := p.AgeMin, p.AgeMax
	if lo == 0 {
		lo = 18
	}
	if hi == 0 {
		hi = 99
	}
	return lo, hi
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "MinglProfiles"
