package chat

import (
	"fmt"
	"strings"

	"portfolio-server/pkg/content"
)

// NotAvailableMarker is emitted for a section whose category is empty or
// failed to load, so the model never has to guess whether data is missing.
const NotAvailableMarker = "information not available"

const contextPreamble = `You are the assistant on a personal portfolio website. Answer visitor questions using ONLY the portfolio data between the <<< >>> markers below. If something is not covered by the data, say honestly that you do not have that information; never invent facts.

When a visitor wants to book a meeting or call, follow this script step by step:
1. Ask for their name and email address.
2. Ask what they would like to discuss.
3. Ask about their preferred timeline.
4. Share the contact details from the personal details section.
5. Confirm that the request will be followed up by email.

Keep replies short and conversational.`

// seedAcknowledgment is the fixed assistant reply paired with the context
// message when a session is seeded. It primes the model without counting as a
// visible conversation turn.
const seedAcknowledgment = "Understood. I will answer questions using only the portfolio data provided, and I will say so when information is not available."

// FormatContext renders the aggregated snapshot into the briefing text used
// to seed a conversation. Pure and deterministic: same snapshot, same text.
// Every category always gets its section header, in fixed order.
func FormatContext(snap content.Snapshot) string {
	var b strings.Builder
	b.WriteString(contextPreamble)
	b.WriteString("\n\n<<<\n")

	writeSection(&b, "Personal Details", formatPersonalDetails(slice(snap, content.CategoryPersonalDetails)))
	writeSection(&b, "Technical Skills", formatTechStack(slice(snap, content.CategoryTechStack)))
	writeSection(&b, "Experience", formatExperience(slice(snap, content.CategoryExperience)))
	writeSection(&b, "Projects", formatProjects(slice(snap, content.CategoryProjects)))
	writeSection(&b, "Certifications", formatCertifications(slice(snap, content.CategoryCertifications)))
	writeSection(&b, "Blog Posts", formatBlogPosts(slice(snap, content.CategoryBlogPosts)))
	writeSection(&b, "About", formatAbout(slice(snap, content.CategoryAbout)))

	b.WriteString(">>>\n")
	return b.String()
}

func slice(snap content.Snapshot, c content.Category) content.SliceState {
	return snap.Slices[c]
}

func writeSection(b *strings.Builder, header, body string) {
	fmt.Fprintf(b, "## %s\n", header)
	if strings.TrimSpace(body) == "" {
		body = NotAvailableMarker
	}
	b.WriteString(body)
	b.WriteString("\n\n")
}

func formatPersonalDetails(st content.SliceState) string {
	if st.Err != nil || st.Doc.PersonalDetails == nil {
		return ""
	}
	pd := st.Doc.PersonalDetails
	var lines []string
	add := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Name", pd.FullName)
	add("Headline", pd.Headline)
	add("Email", pd.Email)
	add("Phone", pd.Phone)
	add("Location", pd.Location)
	add("Website", pd.Website)
	add("GitHub", pd.GitHub)
	add("LinkedIn", pd.LinkedIn)
	return strings.Join(lines, "\n")
}

func formatTechStack(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.TechStack) == 0 {
		return ""
	}
	var lines []string
	for _, g := range st.Doc.TechStack {
		lines = append(lines, fmt.Sprintf("%s: %s", g.Category, strings.Join(g.Items, ", ")))
	}
	return strings.Join(lines, "\n")
}

func formatExperience(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.Experience) == 0 {
		return ""
	}
	var lines []string
	for _, e := range st.Doc.Experience {
		line := fmt.Sprintf("- %s at %s (%s - %s)", e.Role, e.Company, e.Start, e.End)
		if strings.TrimSpace(e.Description) != "" {
			line += ": " + e.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatProjects(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.Projects) == 0 {
		return ""
	}
	var lines []string
	for _, p := range st.Doc.Projects {
		line := fmt.Sprintf("- %s: %s", p.Title, p.Description)
		if p.URL != "" {
			line += " (" + p.URL + ")"
		}
		if len(p.Tech) > 0 {
			line += " [" + strings.Join(p.Tech, ", ") + "]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatCertifications(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.Certifications) == 0 {
		return ""
	}
	var lines []string
	for _, c := range st.Doc.Certifications {
		line := "- " + c.Name
		if c.Issuer != "" {
			line += ", " + c.Issuer
		}
		if c.Date != "" {
			line += " (" + c.Date + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatBlogPosts(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.BlogPosts) == 0 {
		return ""
	}
	var lines []string
	for _, p := range st.Doc.BlogPosts {
		if !p.Published {
			continue
		}
		line := "- " + p.Title
		if strings.TrimSpace(p.Summary) != "" {
			line += ": " + p.Summary
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatAbout(st content.SliceState) string {
	if st.Err != nil || len(st.Doc.About) == 0 {
		return ""
	}
	var parts []string
	for _, sec := range st.Doc.About {
		if sec.Kind == content.AboutTitled {
			parts = append(parts, sec.Title+": "+sec.Text)
		} else {
			parts = append(parts, sec.Text)
		}
	}
	return strings.Join(parts, "\n")
}
