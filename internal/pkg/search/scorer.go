package search

import "strings"

const (
	ScoreExactTitle = 1.0
	ScoreTitle      = 0.7
	ScoreContent    = 0.4
)

// ScoreFunc 判断帖子是否命中查询，命中时返回 [0,1] 内的相似度
type ScoreFunc func(query, title, content string) (float64, bool)

// SubstringScore 大小写不敏感的子串匹配
// 标题完全相等 1.0，标题包含 0.7，仅正文包含 0.4
func SubstringScore(query, title, content string) (float64, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return UnscoredSimilarity, true
	}

	t := strings.ToLower(title)
	switch {
	case t == q:
		return ScoreExactTitle, true
	case strings.Contains(t, q):
		return ScoreTitle, true
	case strings.Contains(strings.ToLower(content), q):
		return ScoreContent, true
	}
	return 0, false
}
