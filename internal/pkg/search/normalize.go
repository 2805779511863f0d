package search

import "strings"

// NormalizeQuery 统计热搜用的查询词形式：去首尾空白、小写、连续空白合并为一个空格
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
