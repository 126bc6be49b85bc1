package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/config"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/validation"
)

// CreateDefaultGroups creates the configured groups whose slug does not exist
// yet. Existing groups are left untouched. Failures are collected so one bad
// entry does not block the rest.
func CreateDefaultGroups(ctx context.Context, groups repositories.GroupStore, seeds []config.GroupSeed, lgr zerolog.Logger) error {
	if len(seeds) == 0 {
		return nil
	}
	lgr.Info().Int("count", len(seeds)).Msg("Checking/Creating default groups...")

	var finalErr error
	for _, s := range seeds {
		if !validation.IsValidSlug(s.Slug) {
			finalErr = errors.Join(finalErr, fmt.Errorf("seed group %q: invalid slug", s.Slug))
			continue
		}

		group := &models.Group{Title: s.Title, Slug: s.Slug, Description: s.Description}
		err := groups.Create(ctx, group)
		switch {
		case err == nil:
			lgr.Info().Str("slug", s.Slug).Int64("groupID", group.ID).Msg("Default group created")
		case errors.Is(err, apperrors.ErrGroupAlreadyExists):
			lgr.Debug().Str("slug", s.Slug).Msg("Default group already exists")
		default:
			lgr.Error().Err(err).Str("slug", s.Slug).Msg("Error creating default group")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}
