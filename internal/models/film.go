package models

// Film is a single catalog entry. Liked is a display hint only; favourite
// membership is tracked by films.Favourites.
type Film struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ImageRef    string `json:"imageRef"`
	Description string `json:"description"`
	Liked       bool   `json:"liked"`
}
