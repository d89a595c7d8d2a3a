package kernel

import "sort"

// Spec describes a kernel for listings.
type Spec struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

var registry = make(map[string]Spec)

// Register adds a kernel spec, replacing any spec with the same ID.
func Register(s Spec) {
	registry[s.ID] = s
}

// Get retrieves a kernel spec by ID.
func Get(id string) (Spec, bool) {
	s, ok := registry[id]
	return s, ok
}

// List returns all registered kernels ordered by ID.
func List() []Spec {
	out := make([]Spec, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func init() {
	Register(Spec{
		ID:     "rank",
		Name:   "Leaderboard ranking",
		Input:  `[{"creditsMinor": "<int>", ...}]`,
		Output: `[{"creditsMinor": "<int>", "rank": <int>, ...}]`,
	})
	Register(Spec{
		ID:     "deal",
		Name:   "Poker two-card deal",
		Input:  "none",
		Output: `{"hand": [<card>, <card>], "remaining": 50}`,
	})
	Register(Spec{
		ID:     "slice",
		Name:   "Wheel slice index",
		Input:  `{"stopRotationDeg": <real>, "sliceCount": <int>}`,
		Output: `{"sliceIndex": <int>}`,
	})
	Register(Spec{
		ID:     "spin",
		Name:   "European roulette spin",
		Input:  "none",
		Output: `{"color": "red|black|green", "stopRotationDeg": <real>, "wheelIndex": <int>, "winningNumber": <int>}`,
	})
}
