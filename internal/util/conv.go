package util

import (
	"strconv"
)

// ParseIntDefault 解析失败或不是正数时返回默认值
func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
