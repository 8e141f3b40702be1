package persona

// Profile is the keyword/priority knowledge associated with a persona role.
// Priorities count double in relevance scoring.
type Profile struct {
	Role       string   `yaml:"role"`
	Task       string   `yaml:"task"`
	Keywords   []string `yaml:"keywords"`
	Priorities []string `yaml:"priorities"`
}

// Registry maps role names to profiles. Lookup is exact and case-sensitive;
// a miss is not an error, callers produce empty result sets instead.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry builds a registry from the given profiles. Later profiles with
// the same role replace earlier ones.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		r.profiles[p.Role] = p
	}
	return r
}

// Register adds or replaces a profile.
func (r *Registry) Register(p Profile) {
	r.profiles[p.Role] = p
}

// Lookup returns the profile for a role, if registered.
func (r *Registry) Lookup(role string) (Profile, bool) {
	p, ok := r.profiles[role]
	return p, ok
}

// Roles returns the registered role names in unspecified order.
func (r *Registry) Roles() []string {
	roles := make([]string, 0, len(r.profiles))
	for role := range r.profiles {
		roles = append(roles, role)
	}
	return roles
}

// Builtin returns a registry preloaded with the reference deployment's
// persona profiles.
func Builtin() *Registry {
	return NewRegistry(
		Profile{
			Role: "Travel Planner",
			Task: "Plan trips and travel experiences",
			Keywords: []string{
				"travel", "destination", "accommodation", "transport", "itinerary",
				"attractions", "restaurants", "budget", "activities", "booking",
			},
			Priorities: []string{"practical information", "recommendations", "logistics", "costs"},
		},
		Profile{
			Role: "HR Professional",
			Task: "Create and manage forms and compliance",
			Keywords: []string{
				"forms", "compliance", "onboarding", "HR", "employee", "workflow",
				"automation", "fillable", "digital", "process",
			},
			Priorities: []string{"efficiency", "compliance", "automation", "user experience"},
		},
		Profile{
			Role: "Food Contractor",
			Task: "Prepare menus and catering services",
			Keywords: []string{
				"recipe", "menu", "vegetarian", "buffet", "catering", "ingredients",
				"cooking", "preparation", "dietary", "corporate",
			},
			Priorities: []string{"scalability", "dietary restrictions", "presentation", "cost-effectiveness"},
		},
	)
}
