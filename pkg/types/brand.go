package types

// Brand is a product line carried by the distributor.
type Brand struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	OriginCountry  string   `json:"originCountry"`
	Certifications []string `json:"certifications"`
	ImageURL       string   `json:"imageUrl"`
}
