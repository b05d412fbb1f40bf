package chat

import "portfolio-server/pkg/nlp"

// Intent is a coarse classification of a visitor message. Flags are not
// exclusive; a message may carry several intents at once.
type Intent struct {
	Meeting    bool `json:"meeting"`
	Skills     bool `json:"skills"`
	Projects   bool `json:"projects"`
	Experience bool `json:"experience"`
}

// Fixed keyword lists, matched case-insensitively as whole words/phrases.
// Deliberately coarse; swapping in a real classifier later only has to keep
// Classify's contract.
var (
	meetingKeywords = []string{
		"meeting", "meet", "schedule", "call", "appointment", "book",
		"hire", "hiring", "available", "availability", "zoom", "connect",
		"get in touch", "talk",
	}
	skillKeywords = []string{
		"skill", "skills", "tech stack", "stack", "technology",
		"technologies", "tools", "languages", "frameworks",
	}
	projectKeywords = []string{
		"project", "projects", "portfolio", "built", "build", "app",
		"apps", "website", "websites", "created",
	}
	experienceKeywords = []string{
		"experience", "worked", "work history", "job", "jobs", "career",
		"company", "companies", "role", "roles", "position",
	}
)

// Classify derives intent flags from a free-text message.
func Classify(message string) Intent {
	norm := nlp.Normalize(message)
	return Intent{
		Meeting:    matchesAny(norm, meetingKeywords),
		Skills:     matchesAny(norm, skillKeywords),
		Projects:   matchesAny(norm, projectKeywords),
		Experience: matchesAny(norm, experienceKeywords),
	}
}

func matchesAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if nlp.ContainsPhrase(normalized, nlp.Normalize(kw)) {
			return true
		}
	}
	return false
}

// Canned replies used when the live model cannot answer.
const (
	fallbackMeeting = "I'd love to help you set up a meeting. Please use the scheduling form to leave your name, email, what you'd like to discuss and a preferred time, and you'll get a reply by email."
	fallbackSkills  = "The live assistant is offline right now, but you can find the full technology stack in the Tech Stack section of this site."
	fallbackProject = "The live assistant is offline right now, but the Projects section of this site has descriptions and links for everything that has been built."
	fallbackExp     = "The live assistant is offline right now, but the Experience section of this site covers the full work history."
	fallbackGeneric = "Hi! The live assistant is offline at the moment. Feel free to browse the site, or use the scheduling form if you'd like to set up a conversation."
)

// FallbackResponse returns a canned reply for a message when the live model
// is unavailable. Strict first-match order: meeting, skills, projects,
// experience, then a generic greeting. Never a blend.
func FallbackResponse(message string) string {
	in := Classify(message)
	switch {
	case in.Meeting:
		return fallbackMeeting
	case in.Skills:
		return fallbackSkills
	case in.Projects:
		return fallbackProject
	case in.Experience:
		return fallbackExp
	default:
		return fallbackGeneric
	}
}
