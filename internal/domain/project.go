package domain

// Project represents an entry on the project showcase wall.
// Title, description, link and id are seeded reference data; only emoji,
// catchphrase and image URL are editable through the admin UI.
type Project struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Catchphrase string `json:"catchphrase"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ProjectPatch is a partial update for the admin-editable project fields.
// Nil means "leave the field untouched"; a non-nil pointer to an empty string
// explicitly clears the field.
type ProjectPatch struct {
	Emoji       *string `json:"emoji"`
	Catchphrase *string `json:"catchphrase"`
	ImageURL    *string `json:"imageUrl"`
}

// Empty reports whether the patch carries no field at all.
func (p *ProjectPatch) Empty() bool {
	return p.Emoji == nil && p.Catchphrase == nil && p.ImageURL == nil
}
