package domain

import "time"

// Skill is a single entry in the skills grid.
type Skill struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillInput is the create/update payload for a skill.
type SkillInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,skillcategory"`
	Icon     string `json:"icon,omitempty"`
}

// Input returns the editable fields of s.
func (s Skill) Input() SkillInput {
	return SkillInput{Name: s.Name, Category: s.Category, Icon: s.Icon}
}

// SkillCategories are the groupings the site renders, in display order.
var SkillCategories = []string{
	"Frontend",
	"Backend",
	"Tools, Version Control & AI",
}

// DefaultSkillCategory is preselected for new skills.
const DefaultSkillCategory = "Frontend"

var skillCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(SkillCategories))
	for _, c := range SkillCategories {
		m[c] = true
	}
	return m
}()

// ValidSkillCategory returns true if c is a known skill category.
func ValidSkillCategory(c string) bool {
	return skillCategorySet[c]
}
