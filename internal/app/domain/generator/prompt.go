package generator

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are an expert local travel guide and itinerary planner.
Create a personalized one-day itinerary for %[1]s based on these interests: %[2]s.

Format the answer exactly like this:

### 🏙️ Top 5 Recommended Places in %[1]s
Exactly 5 places matching the interests. For each one, say briefly *why* it fits.

### 📅 Day Trip Itinerary
A chronological schedule using those places.
- **Morning**: [Activities]
- **Afternoon**: [Activities]
- **Evening**: [Activities]

### 💡 Pro Tips
2-3 practical tips for this trip (transport, hidden gems, food).

Keep the tone enthusiastic, professional and concise. Use Markdown.`

func joinInterests(interests []string) string {
	return strings.Join(interests, ", ")
}

// systemPrompt returns the instruction that fixes the itinerary layout the
// page formatter understands.
func systemPrompt(city string, interests []string) string {
	return fmt.Sprintf(systemPromptTemplate, city, joinInterests(interests))
}

func userPrompt(city string, interests []string) string {
	return fmt.Sprintf("Create an itinerary for my day trip to %s involving %s", city, joinInterests(interests))
}
