package resources

import (
	"strings"

	"bhai/internal/models"
)

// Static self-help library, fixed at build time.
var library = []models.Resource{
	{
		ID:          "1",
		Title:       "Understanding Depression",
		Description: "Depression is more than just feeling sad. Learn about the symptoms, causes, and treatment options for depression.",
		Category:    "depression",
		Content: "Depression is a common and serious medical illness that negatively affects how you feel, " +
			"the way you think and how you act. Persistent sadness, loss of interest, low energy, sleep and " +
			"appetite changes, and difficulty concentrating are typical symptoms. Treatment combines medication, " +
			"psychotherapy and self-help such as regular exercise and social contact. If symptoms last more than " +
			"two weeks, reach out to a healthcare provider; if you have thoughts of harming yourself, call a " +
			"crisis helpline immediately.",
	},
	{
		ID:          "2",
		Title:       "Managing Anxiety",
		Description: "Anxiety disorders are the most common mental health condition. Discover effective strategies to manage anxiety symptoms.",
		Category:    "anxiety",
		Content: "Anxiety becomes a problem when worry is persistent and interferes with daily life. Grounding " +
			"exercises, slow breathing, limiting caffeine, and gradually facing feared situations all reduce " +
			"symptoms. Cognitive behavioral therapy is the best-studied treatment; medication can help when " +
			"symptoms are severe.",
	},
	{
		ID:          "3",
		Title:       "Coping with Stress",
		Description: "Stress is a normal part of life, but too much can affect your health. Learn effective stress management techniques.",
		Category:    "stress",
		Content: "Chronic stress affects sleep, mood and physical health. Identify your stressors, protect time " +
			"for rest, move your body daily, and practice relaxation techniques such as progressive muscle " +
			"relaxation or mindfulness. Saying no and asking for help are stress management skills, not failures.",
	},
	{
		ID:          "4",
		Title:       "Understanding PTSD",
		Description: "Post-Traumatic Stress Disorder can develop after experiencing a traumatic event. Learn about symptoms and treatment options.",
		Category:    "ptsd",
		Content: "PTSD can follow experiencing or witnessing a traumatic event. Intrusive memories, avoidance, " +
			"negative mood shifts and heightened arousal are core symptom clusters. Trauma-focused therapies " +
			"such as EMDR and prolonged exposure are effective; symptoms are treatable at any time after the event.",
	},
	{
		ID:          "5",
		Title:       "The Importance of Self-Care",
		Description: "Self-care is crucial for maintaining good mental health. Discover simple self-care practices you can incorporate into your daily routine.",
		Category:    "general",
		Content: "Self-care is the routine maintenance of your own wellbeing: consistent sleep, balanced meals, " +
			"movement, time outdoors, and connection with people who matter to you. Small daily practices are " +
			"more protective than occasional large gestures.",
	},
}

// Categories lists the filterable resource categories.
func Categories() []string {
	return []string{"depression", "anxiety", "ptsd", "stress", "general"}
}

func All() []models.Resource {
	return append([]models.Resource{}, library...)
}

func ByID(id string) (models.Resource, bool) {
	for _, r := range library {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

// Search filters by title/description substring (case-insensitive) and,
// when category is non-empty, by exact category.
func Search(query, category string) []models.Resource {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Resource
	for _, r := range library {
		if category != "" && r.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}
