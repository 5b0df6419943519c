// Package catalog holds the fixed category and tag enumerations used to
// classify submissions. Both are static configuration data.
package catalog

var Categories = []string{
	"fashion", "auto", "food", "beauty", "sport", "tech",
	"lifestyle", "luxury", "docu", "comedy", "music", "film",
}

type TagGroup struct {
	Label string
	Tags  []string
}

// TagGroups is ordered so the tag keyboard renders deterministically.
var TagGroups = []TagGroup{
	{Label: "🎥 Camera", Tags: []string{
		"slowmo", "mo-control", "drone", "steadicam", "handheld", "macro", "grip",
	}},
	{Label: "🎨 Grading", Tags: []string{
		"neon", "bw", "warm", "cold", "natural",
	}},
	{Label: "🎭 Mood", Tags: []string{
		"dreamy", "energetic", "intense", "tender", "epic", "drama", "angry",
	}},
	{Label: "🖥️ Editing/FX", Tags: []string{
		"timelapse", "split_screen", "lighttrails", "vfx", "animation",
		"transition-in", "transition-out", "cg", "ai",
	}},
	{Label: "💡 Light", Tags: []string{
		"low_key", "high_key", "dynamic_light",
	}},
	{Label: "🔊 Sound", Tags: []string{
		"music", "beat", "soundesign", "sfx",
	}},
}

func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func IsValidTag(name string) bool {
	for _, group := range TagGroups {
		for _, t := range group.Tags {
			if t == name {
				return true
			}
		}
	}
	return false
}

// AllTags flattens the groups in catalog order.
func AllTags() []string {
	var tags []string
	for _, group := range TagGroups {
		tags = append(tags, group.Tags...)
	}
	return tags
}
