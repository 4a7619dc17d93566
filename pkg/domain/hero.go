package domain

// Hero is the landing section of the portfolio site.
type Hero struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Subtitle          string `json:"subtitle"`
	ImageURL          string `json:"image_url,omitempty"`
	ViewButtonText    string `json:"view_button_text,omitempty"`
	ContactButtonText string `json:"contact_button_text,omitempty"`
}

// HeroInput is the create/update payload for a hero section.
type HeroInput struct {
	Title             string `json:"title" validate:"required,max=200"`
	Subtitle          string `json:"subtitle" validate:"required,max=500"`
	ImageURL          string `json:"image_url,omitempty" validate:"omitempty,url"`
	ViewButtonText    string `json:"view_button_text,omitempty" validate:"max=50"`
	ContactButtonText string `json:"contact_button_text,omitempty" validate:"max=50"`
}

// Input returns the editable fields of h.
func (h Hero) Input() HeroInput {
	return HeroInput{
		Title:             h.Title,
		Subtitle:          h.Subtitle,
		ImageURL:          h.ImageURL,
		ViewButtonText:    h.ViewButtonText,
		ContactButtonText: h.ContactButtonText,
	}
}
