package recommendation

import (
	"fmt"
	"strings"
)

const noPreferences = "none specified"

func generateTravelPrompt(place, preferences string) string {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" {
		preferences = noPreferences
	}
	return fmt.Sprintf(`
You are a travel guide. Provide a list of top travel locations within or nearby the specified place. Also include details necessary for planning a trip such as suitability for solo travelers, families, or friends, age considerations, weather, terrain, etc.
Place: %s
User preferences: %s
`, strings.TrimSpace(place), preferences)
}
