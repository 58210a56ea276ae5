package models

// DefaultPageSize matches the list surfaces of the office UI.
const DefaultPageSize = 20

// Page describes one window of a paginated collection. Offsets are
// zero-based row indexes; From/To are the one-based display bounds for
// "Εμφάνιση X–Y από Z".
type Page struct {
	Number     int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Offset     int `json:"-"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// NewPage clamps the requested page into range and computes the window.
// Page p covers rows [(p-1)*size, p*size-1]. size <= 0 falls back to
// DefaultPageSize; an empty collection reports page 1 of 1 with From=To=0.
func NewPage(number, size, total int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	p := Page{
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Offset:     (number - 1) * size,
	}
	if total > 0 {
		p.From = p.Offset + 1
		p.To = p.Offset + size
		if p.To > total {
			p.To = total
		}
	}
	return p
}
