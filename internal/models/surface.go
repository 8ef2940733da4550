package models

// CopyControl is the copy-to-clipboard affordance of a surface
type CopyControl struct {
	ID      string
	Label   string
	Visible bool
}

// Surface is the region where a tool's outcome is rendered.
// Copy is an explicit association, nil when the surface has no copy affordance.
type Surface struct {
	ID      string
	Outcome Outcome
	Copy    *CopyControl
}

func NewSurface(id string) *Surface {
	return &Surface{
		ID: id,
		Copy: &CopyControl{
			ID:    id + "-copy",
			Label: "Copy",
		},
	}
}

// CopyText returns the text a copy action would place on the clipboard
func (s *Surface) CopyText() (string, bool) {
	if s.Copy == nil || !s.Copy.Visible || s.Outcome.Kind != Success {
		return "", false
	}
	return s.Outcome.Text, true
}
