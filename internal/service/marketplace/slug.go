package marketplace

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// uniqueSlug строит slug из заголовка, добавляя числовой суффикс при коллизии
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "listing"
	}

	result := base
	for i := 1; ; i++ {
		exists, err := s.listingRepo.SlugExists(ctx, result)
		if err != nil {
			return "", err
		}
		if !exists {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
