package search

import "strings"

// TagSet 将标签列表转换为集合，fold 为 true 时统一转小写
func TagSet(tags []string, fold bool) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if fold {
			tag = strings.ToLower(tag)
		}
		set[tag] = struct{}{}
	}
	return set
}

// MatchTags 帖子标签集合是否满足全部过滤组
//   - OR：至少包含一个
//   - AND：全部包含
//   - NOT：一个都不包含
//
// 标签列表为空的过滤组视为不存在
func MatchTags(postTags map[string]struct{}, filters []TagFilter) bool {
	for _, f := range filters {
		if len(f.Tags) == 0 {
			continue
		}
		if !matchGroup(postTags, f) {
			return false
		}
	}
	return true
}

func matchGroup(postTags map[string]struct{}, f TagFilter) bool {
	switch f.Operator {
	case OperatorOr:
		for _, tag := range f.Tags {
			if _, ok := postTags[tag]; ok {
				return true
			}
		}
		return false
	case OperatorAnd:
		for _, tag := range f.Tags {
			if _, ok := postTags[tag]; !ok {
				return false
			}
		}
		return true
	case OperatorNot:
		for _, tag := range f.Tags {
			if _, ok := postTags[tag]; ok {
				return false
			}
		}
		return true
	}
	return false
}
