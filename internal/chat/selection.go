package chat

import "unifiedai/internal/models"

// Selection is the ordered set of models the next prompt goes to. IDs
// are unique.
type Selection struct {
	items []models.SelectedModel
}

// Toggle adds m when absent and removes it when present. It reports
// whether m is selected afterwards.
func (s *Selection) Toggle(m models.SelectedModel) bool {
	for i, it := range s.items {
		if it.ID == m.ID {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return false
		}
	}
	s.items = append(s.items, m)
	return true
}

func (s *Selection) Contains(id models.ID) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int { return len(s.items) }

func (s *Selection) Items() []models.SelectedModel {
	out := make([]models.SelectedModel, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection) IDs() []models.ID {
	ids := make([]models.ID, 0, len(s.items))
	for _, it := range s.items {
		ids = append(ids, it.ID)
	}
	return ids
}

func (s *Selection) Clear() { s.items = nil }
