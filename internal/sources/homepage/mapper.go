package homepage

import (
	"sort"
	"strings"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// ToAddRequests turns every bookmark with an href into an add request. The
// bookmark name becomes the title and the group name becomes a tag, next to
// extraTags. Groups keep their file order; bookmarks inside a list element
// are sorted by name.
func ToAddRequests(config BookmarksConfig, extraTags []string) []domain.AddRequest {
	var reqs []domain.AddRequest

	for _, group := range config {
		for _, groupName := range sortedKeys(group) {
			tags := append([]string{GroupTag(groupName)}, extraTags...)

			for _, bookmarkMap := range group[groupName] {
				for _, name := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[name]
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]
					href := strings.TrimSpace(entry.Href)
					if href == "" {
						continue
					}

					reqs = append(reqs, domain.AddRequest{
						URL:         href,
						Tags:        domain.NormalizeTags(tags),
						Title:       domain.StringPtr(strings.TrimSpace(name)),
						Description: domain.StringPtr(strings.TrimSpace(entry.Description)),
					})
				}
			}
		}
	}
	return reqs
}

// GroupTag derives a tag from a group name: lower case, words joined by "-".
func GroupTag(group string) string {
	return strings.ToLower(strings.Join(strings.Fields(group), "-"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
