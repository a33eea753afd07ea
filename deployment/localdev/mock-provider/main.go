// mock-provider serves a deterministic observation batch so the engine can
// be exercised locally without a real query-check pipeline.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type observation struct {
	Query           string    `json:"query"`
	Intent          string    `json:"intent"`
	Volume          float64   `json:"volume"`
	SERPPosition    int       `json:"serp_position,omitempty"`
	AIPresent       bool      `json:"ai_present"`
	AIPosition      string    `json:"ai_position"`
	HasOurCitation  bool      `json:"has_our_citation"`
	AITokens        int       `json:"ai_tokens,omitempty"`
	AILinksCount    int       `json:"ai_links_count,omitempty"`
	PAAPresent      bool      `json:"paa_present,omitempty"`
	MapPackPresent  bool      `json:"map_pack_present,omitempty"`
	ShoppingPresent bool      `json:"shopping_present,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/v1/query-checks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]any{"observations": sampleObservations()})
	})

	addr := ":9100"
	log.Printf("mock observation provider listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func sampleObservations() []observation {
	now := time.Now().UTC()
	return []observation{
		{
			Query: "toyota dealership near me", Intent: "local", Volume: 2400,
			SERPPosition: 2, AIPresent: true, AIPosition: "top",
			HasOurCitation: false, AITokens: 520, AILinksCount: 4,
			MapPackPresent: true, CheckedAt: now.Add(-2 * time.Hour),
		},
		{
			Query: "2024 camry inventory", Intent: "inventory", Volume: 880,
			SERPPosition: 1, AIPresent: true, AIPosition: "mid",
			HasOurCitation: true, AITokens: 310, AILinksCount: 6,
			ShoppingPresent: true, CheckedAt: now.Add(-3 * time.Hour),
		},
		{
			Query: "auto loan rates bad credit", Intent: "finance", Volume: 1900,
			SERPPosition: 5, AIPresent: true, AIPosition: "top",
			HasOurCitation: false, AITokens: 640, PAAPresent: true,
			CheckedAt: now.Add(-5 * time.Hour),
		},
		{
			Query: "trade in value calculator", Intent: "trade", Volume: 1300,
			SERPPosition: 4, AIPresent: false, AIPosition: "none",
			CheckedAt: now.Add(-8 * time.Hour),
		},
		{
			Query: "synthetic oil change interval", Intent: "service", Volume: 720,
			SERPPosition: 7, AIPresent: true, AIPosition: "bottom",
			HasOurCitation: false, AITokens: 180,
			CheckedAt: now.Add(-12 * time.Hour),
		},
		{
			Query: "is awd worth it", Intent: "info", Volume: 3100,
			AIPresent: true, AIPosition: "top",
			HasOurCitation: false, AITokens: 600, PAAPresent: true,
			CheckedAt: now.Add(-24 * time.Hour),
		},
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
