package domain

// About is the biography section of the portfolio site.
type About struct {
	ID        int      `json:"id"`
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Education string   `json:"education,omitempty"`
}

// AboutInput is the create/update payload for an about section.
type AboutInput struct {
	Title     string   `json:"title,omitempty" validate:"max=200"`
	Content   string   `json:"content,omitempty"`
	ImageURL  string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Skills    []string `json:"skills,omitempty" validate:"dive,required"`
	Education string   `json:"education,omitempty"`
}

// Input returns the editable fields of a.
func (a About) Input() AboutInput {
	return AboutInput{
		Title:     a.Title,
		Content:   a.Content,
		ImageURL:  a.ImageURL,
		Skills:    a.Skills,
		Education: a.Education,
	}
}
