package service

import (
	"context"
	"edu_challenge_backend/internal/util"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "challenge"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify 转为小写 ASCII，去掉声调符号，其余字符折叠为单个连字符
func Slugify(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return fallbackSlug
	}
	return out
}

type slugChecker interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// uniqueSlug 依次尝试 base、base-1 … base-N，全部占用时退回毫秒时间戳后缀
func uniqueSlug(ctx context.Context, repo slugChecker, base, excludeID string, maxAttempts int, now func() time.Time) (string, error) {
	candidates := make([]string, 0, maxAttempts+2)
	candidates = append(candidates, base)
	for i := 1; i <= maxAttempts; i++ {
		candidates = append(candidates, fmt.Sprintf("%s-%d", base, i))
	}
	candidates = append(candidates, fmt.Sprintf("%s-%d", base, now().UnixMilli()))

	for _, candidate := range candidates {
		exists, err := repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", util.ErrSlugExhausted
}
