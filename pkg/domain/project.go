package domain

import "time"

// Project is a portfolio project card.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"desc"`
	GitHub      string    `json:"github,omitempty"`
	Demo        string    `json:"demo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"desc" validate:"required"`
	GitHub      string `json:"github,omitempty" validate:"omitempty,url"`
	Demo        string `json:"demo,omitempty" validate:"omitempty,url"`
}

// Input returns the editable fields of p.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		GitHub:      p.GitHub,
		Demo:        p.Demo,
	}
}
