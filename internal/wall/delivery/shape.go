package delivery

import (
	"encoding/json"
	"net/http"

	"zhurnal/internal/journal"
)

type shapedJournal struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	SearchURL string `json:"search_url"`
	ThumbURL  string `json:"thumb_url"`
}

// ShapeJournals flattens records into the public API payload.
func ShapeJournals(records []journal.Record, links journal.Links) ([]byte, error) {
	out := struct {
		Total    int             `json:"total"`
		Journals []shapedJournal `json:"journals"`
	}{
		Total:    len(records),
		Journals: make([]shapedJournal, 0, len(records)), // ensure [] not null
	}
	for _, r := range records {
		out.Journals = append(out.Journals, shapedJournal{
			Name:      r.Name,
			Code:      r.Code,
			SearchURL: links.SearchURL(r.Code),
			ThumbURL:  links.ThumbURL(r.Code),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
