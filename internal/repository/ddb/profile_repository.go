package ddb

import (
	"context"
	"strings"

	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	"blog-backend/internal/storage"

	"go.uber.org/zap"
)

// ddbProfile is the table shape of a profile item. Profiles carry only a
// creation timestamp; profile updates do not track a modification time.
type ddbProfile struct {
	PK        string `dynamodbav:"pk"`
	SK        string `dynamodbav:"sk"`
	Email     string `dynamodbav:"email"`
	Username  string `dynamodbav:"username"`
	Role      string `dynamodbav:"role"`
	AvatarURL string `dynamodbav:"avatarUrl,omitempty"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// ProfileRepository is the DynamoDB-backed profile repository.
type ProfileRepository struct {
	engine *Engine[ddbProfile]
}

// NewProfileRepository creates a profile repository over the given table.
func NewProfileRepository(table storage.Table, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		engine: NewEngine[ddbProfile](table, "profile", logger),
	}
}

// Save writes the profile item, overwriting any previous version.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	pk, sk := repository.ProfileKey(profile.UserID)
	return r.engine.Put(ctx, ddbProfile{
		PK:        pk,
		SK:        sk,
		Email:     profile.Email,
		Username:  profile.Username,
		Role:      profile.Role,
		AvatarURL: profile.AvatarURL,
		CreatedAt: formatTime(profile.CreatedAt),
	})
}

// FindByUserID returns the profile, or nil when it does not exist.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	pk, sk := repository.ProfileKey(userID)
	record, err := r.engine.Get(ctx, pk, sk)
	if err != nil || record == nil {
		return nil, err
	}
	profile, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete removes the profile. Missing profiles are a no-op.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	pk, sk := repository.ProfileKey(userID)
	return r.engine.Delete(ctx, pk, sk)
}

// FindAll returns one scan page of profiles.
func (r *ProfileRepository) FindAll(ctx context.Context, page repository.PageRequest) (repository.Page[domain.Profile], error) {
	records, err := r.engine.Scan(ctx, page, keepProfile)
	if err != nil {
		return repository.Page[domain.Profile]{}, err
	}
	return toDomainPage(records, ddbProfile.toDomain)
}

// ListEmailsExcept walks every scan page and collects the email of each
// profile other than the named user's. Used to build the NEW_POST
// recipient list; unlike the paged reads, it follows the continuation
// position to exhaustion.
func (r *ProfileRepository) ListEmailsExcept(ctx context.Context, userID string) ([]string, error) {
	var emails []string
	page := repository.NewPageRequest(repository.MaxPageSize, "")
	for {
		records, err := r.engine.Scan(ctx, page, keepProfile)
		if err != nil {
			return nil, err
		}
		for _, rec := range records.Items {
			if rec.Email == "" {
				continue
			}
			if strings.TrimPrefix(rec.PK, repository.UserPrefix) == userID || rec.Username == userID {
				continue
			}
			emails = append(emails, rec.Email)
		}
		if !records.HasMore {
			return emails, nil
		}
		page = repository.NewPageRequest(repository.MaxPageSize, *records.NextToken)
	}
}

func keepProfile(rec ddbProfile) bool {
	return rec.SK == repository.ProfileSK && strings.HasPrefix(rec.PK, repository.UserPrefix)
}

func (rec ddbProfile) toDomain() (domain.Profile, error) {
	createdAt, err := parseTime(rec.CreatedAt, "profile createdAt")
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		UserID:    strings.TrimPrefix(rec.PK, repository.UserPrefix),
		Email:     rec.Email,
		Username:  rec.Username,
		Role:      rec.Role,
		AvatarURL: rec.AvatarURL,
		CreatedAt: createdAt,
	}, nil
}
