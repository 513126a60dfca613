package store

import "clubroster/internal/model"

// ResolveTags maps tag ids to copies of the matching tags, in the order the ids
// were given. Ids with no matching tag are dropped.
func ResolveTags(tags []model.Tag, ids []string) []model.Tag {
	out := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		for _, t := range tags {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

type TagGroup struct {
	Category model.Category `json:"category"`
	Tags     []model.Tag    `json:"tags"`
}

// GroupTags partitions tags by category. Every category is present, in
// model.Categories order, even when it holds no tags.
func GroupTags(tags []model.Tag) []TagGroup {
	groups := make([]TagGroup, len(model.Categories))
	pos := make(map[model.Category]int, len(model.Categories))
	for i, c := range model.Categories {
		groups[i] = TagGroup{Category: c, Tags: []model.Tag{}}
		pos[c] = i
	}
	for _, t := range tags {
		i, ok := pos[t.Category]
		if !ok {
			continue
		}
		groups[i].Tags = append(groups[i].Tags, t)
	}
	return groups
}
